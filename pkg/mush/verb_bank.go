package mush

import (
	"fmt"
	"strconv"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerBankVerbs(v map[string]VerbHandler) {
	v["BALANCE"] = handleBalance
	v["BAL"] = handleBalance
	v["DEPOSIT"] = handleDeposit
	v["DEP"] = handleDeposit
	v["WITHDRAW"] = handleWithdraw
	v["WITH"] = handleWithdraw
	v["BTRANSFER"] = handleBankTransfer
	v["BTRANS"] = handleBankTransfer
}

func handleBalance(ctx *VerbContext) (string, error) {
	return fmt.Sprintf("On hand: %d. Banked: %d.\n",
		ctx.Player.Currency.BaseValue(), ctx.Player.BankedCurrency.BaseValue()), nil
}

func parseAmount(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid amount")
	}
	return n, nil
}

func handleDeposit(ctx *VerbContext) (string, error) {
	amt, err := parseAmount(ctx.Arg(0))
	if err != nil {
		return "Usage: DEPOSIT <amount>\n", nil
	}
	if err := ctx.Store.BankDeposit(ctx.Player.Username, world.Decimal(amt)); err != nil {
		return "You don't have that much on hand.\n", nil
	}
	return fmt.Sprintf("Deposited %d.\n", amt), nil
}

func handleWithdraw(ctx *VerbContext) (string, error) {
	amt, err := parseAmount(ctx.Arg(0))
	if err != nil {
		return "Usage: WITHDRAW <amount>\n", nil
	}
	if err := ctx.Store.BankWithdraw(ctx.Player.Username, world.Decimal(amt)); err != nil {
		return "Your bank balance is too low.\n", nil
	}
	return fmt.Sprintf("Withdrew %d.\n", amt), nil
}

func handleBankTransfer(ctx *VerbContext) (string, error) {
	if len(ctx.Args) < 2 {
		return "Usage: BTRANSFER <player> <amount>\n", nil
	}
	recipient := ctx.Arg(0)
	amt, err := parseAmount(ctx.Arg(1))
	if err != nil {
		return "Usage: BTRANSFER <player> <amount>\n", nil
	}
	if err := ctx.Store.BankTransfer(ctx.Player.Username, recipient, world.Decimal(amt)); err != nil {
		return "Transfer failed: insufficient funds or unknown recipient.\n", nil
	}
	return fmt.Sprintf("Transferred %d to %s.\n", amt, recipient), nil
}
