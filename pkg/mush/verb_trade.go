package mush

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerTradeVerbs(v map[string]VerbHandler) {
	v["TRADE"] = handleTradeStart
	v["OFFER"] = handleOffer
	v["ACCEPT"] = handleAccept
	v["ACC"] = handleAccept
	v["REJECT"] = handleCancelTrade
	v["REJ"] = handleCancelTrade
	v["CANCEL"] = handleCancelTrade
	v["THISTORY"] = handleTradeHistory
}

func handleTradeStart(ctx *VerbContext) (string, error) {
	partner := ctx.Arg(0)
	if partner == "" {
		return "Usage: TRADE <player>\n", nil
	}
	if _, exists, err := ctx.Store.GetPlayerActiveTrade(ctx.Player.Username); err != nil {
		return "", err
	} else if exists {
		return "You are already in a trade.\n", nil
	}
	if _, err := ctx.Store.GetPlayer(partner); err == world.ErrNotFound {
		return "No such player.\n", nil
	} else if err != nil {
		return "", err
	}

	session := world.TradeSession{
		ID: uuid.NewString(), PlayerA: ctx.Player.Username, PlayerB: partner,
		CreatedAt: ctx.Now, ExpiresAt: ctx.Now.Add(5 * time.Minute),
	}
	if err := ctx.Store.PutTradeSession(session); err != nil {
		return "", err
	}
	return fmt.Sprintf("Trade session opened with %s. Use OFFER to stage your side.\n", partner), nil
}

func handleOffer(ctx *VerbContext) (string, error) {
	trade, ok, err := ctx.Store.GetPlayerActiveTrade(ctx.Player.Username)
	if err != nil {
		return "", err
	}
	if !ok {
		return "You aren't in a trade. Use TRADE <player> first.\n", nil
	}

	amt, aerr := parseAmount(ctx.Arg(0))
	offer := world.TradeOffer{}
	if aerr == nil {
		offer.Currency = amt
	} else {
		name := ctx.Rest(0)
		obj, _, held := carriedObject(ctx, name)
		if !held {
			return "Usage: OFFER <amount> or OFFER <item>\n", nil
		}
		offer.Items = []world.InventoryStack{{ObjectID: obj.ID, Quantity: 1}}
	}

	if trade.PlayerA == ctx.Player.Username {
		trade.OfferA = offer
	} else {
		trade.OfferB = offer
	}
	if err := ctx.Store.PutTradeSession(trade); err != nil {
		return "", err
	}
	return "Offer staged. Both parties must ACCEPT to complete the trade.\n", nil
}

func handleAccept(ctx *VerbContext) (string, error) {
	trade, ok, err := ctx.Store.GetPlayerActiveTrade(ctx.Player.Username)
	if err != nil {
		return "", err
	}
	if !ok {
		return "You aren't in a trade.\n", nil
	}
	if trade.PlayerA == ctx.Player.Username {
		trade.OfferA.Accepted = true
	} else {
		trade.OfferB.Accepted = true
	}
	if err := ctx.Store.PutTradeSession(trade); err != nil {
		return "", err
	}
	if !trade.OfferA.Accepted || !trade.OfferB.Accepted {
		return "Accepted. Waiting on the other party.\n", nil
	}
	if err := ctx.Store.ExecuteTrade(trade, ctx.Now); err != nil {
		return fmt.Sprintf("Trade failed: %v\n", err), nil
	}
	// ExecuteTrade committed its own up-to-date copies of both player
	// records directly to the store; reload ours before layering the
	// achievement counter on top; otherwise the stale in-memory copy
	// would overwrite the trade's own currency/item changes.
	refreshed, err := ctx.Store.GetPlayer(ctx.Player.Username)
	if err != nil {
		return "", err
	}
	ctx.Player = refreshed
	if err := advanceAchievement(ctx, world.TriggerTradeCount, 1); err != nil {
		return "", err
	}
	return "Trade complete!\n", nil
}

func handleCancelTrade(ctx *VerbContext) (string, error) {
	trade, ok, err := ctx.Store.GetPlayerActiveTrade(ctx.Player.Username)
	if err != nil {
		return "", err
	}
	if !ok {
		return "You aren't in a trade.\n", nil
	}
	if err := ctx.Store.DeleteTradeSession(trade.ID); err != nil {
		return "", err
	}
	return "Trade cancelled.\n", nil
}

func handleTradeHistory(ctx *VerbContext) (string, error) {
	if len(ctx.Player.TradeHistory) == 0 {
		return "You haven't completed any trades yet.\n", nil
	}
	var b strings.Builder
	b.WriteString("Trade history:\n")
	for _, t := range ctx.Player.TradeHistory {
		fmt.Fprintf(&b, "  %s: gave %d, got %d (%s)\n", t.Partner, t.GaveCurrency, t.GotCurrency, t.At.Format("01/02 15:04"))
	}
	return b.String(), nil
}
