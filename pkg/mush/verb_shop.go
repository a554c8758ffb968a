package mush

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerShopVerbs(v map[string]VerbHandler) {
	v["LIST"] = handleShopList
	v["BUY"] = handleBuy
	v["SELL"] = handleSell
}

func shopHere(ctx *VerbContext) (world.ShopRecord, bool, error) {
	shops, err := ctx.Store.GetShopsInLocation(ctx.Room.ID)
	if err != nil {
		return world.ShopRecord{}, false, err
	}
	if len(shops) == 0 {
		return world.ShopRecord{}, false, nil
	}
	return shops[0], true, nil
}

func handleShopList(ctx *VerbContext) (string, error) {
	shop, ok, err := shopHere(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "There is no shop here.\n", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s is selling:\n", shop.Name)
	for key, item := range shop.Inventory {
		obj, err := ctx.Store.GetObject(item.ObjectID)
		name := key
		if err == nil {
			name = obj.Name
		}
		price, perr := buyPrice(ctx, shop, item, 1)
		qty := "unlimited"
		if item.Quantity != nil {
			qty = strconv.Itoa(*item.Quantity)
		}
		if perr != nil {
			fmt.Fprintf(&b, "  %s (qty %s)\n", name, qty)
			continue
		}
		fmt.Fprintf(&b, "  %s - %d (qty %s)\n", name, price, qty)
	}
	return b.String(), nil
}

// buyPrice mirrors the original shop's calculate_buy_price: base
// object value times the shop's (or item's own) markup times quantity,
// rounded to the nearest whole unit.
func buyPrice(ctx *VerbContext, shop world.ShopRecord, item world.ShopItem, qty int) (int64, error) {
	obj, err := ctx.Store.GetObject(item.ObjectID)
	if err != nil {
		return 0, err
	}
	base := obj.CurrencyValue.BaseValue()
	if base <= 0 {
		base = obj.Value
	}
	markup := shop.Config.DefaultBuyMarkup
	if item.Markup != nil {
		markup = *item.Markup
	}
	total := math.Round(float64(base) * markup * float64(qty))
	return int64(total), nil
}

func sellPrice(ctx *VerbContext, shop world.ShopRecord, item world.ShopItem, qty int) (int64, error) {
	obj, err := ctx.Store.GetObject(item.ObjectID)
	if err != nil {
		return 0, err
	}
	base := obj.CurrencyValue.BaseValue()
	if base <= 0 {
		base = obj.Value
	}
	markdown := shop.Config.DefaultSellMarkdown
	if item.Markdown != nil {
		markdown = *item.Markdown
	}
	total := math.Round(float64(base) * markdown * float64(qty))
	return int64(total), nil
}

func handleBuy(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Buy what?\n", nil
	}
	shop, ok, err := shopHere(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "There is no shop here.\n", nil
	}

	var itemKey string
	var item world.ShopItem
	for key, it := range shop.Inventory {
		obj, err := ctx.Store.GetObject(it.ObjectID)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(obj.Name), strings.ToLower(name)) {
			itemKey, item = key, it
			break
		}
	}
	if itemKey == "" {
		return "That's not for sale here.\n", nil
	}
	if !item.InStock() {
		return "That item is out of stock.\n", nil
	}

	price, err := buyPrice(ctx, shop, item, 1)
	if err != nil {
		return "", err
	}
	if !ctx.Player.Currency.CanAfford(world.Decimal(price)) {
		return "You can't afford that.\n", nil
	}

	remaining, err := ctx.Player.Currency.Subtract(world.Decimal(price))
	if err != nil {
		return "", err
	}
	ctx.Player.Currency = remaining
	addInventoryStackLocal(ctx, item.ObjectID, 1)

	if item.Quantity != nil {
		*item.Quantity--
		shop.Inventory[itemKey] = item
		if err := ctx.Store.PutShop(shop); err != nil {
			return "", err
		}
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You buy the item for %d.\n", price), nil
}

func handleSell(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Sell what?\n", nil
	}
	shop, ok, err := shopHere(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "There is no shop here.\n", nil
	}

	obj, invIdx, ok := carriedObject(ctx, name)
	if !ok {
		return "You aren't carrying that.\n", nil
	}

	item := world.ShopItem{ObjectID: obj.ID}
	for _, it := range shop.Inventory {
		if it.ObjectID == obj.ID {
			item = it
			break
		}
	}
	price, err := sellPrice(ctx, shop, item, 1)
	if err != nil {
		return "", err
	}
	credited, err := ctx.Player.Currency.Add(world.Decimal(price))
	if err != nil {
		return "", err
	}
	ctx.Player.Currency = credited
	ctx.Player.InventoryStacks[invIdx].Quantity--
	if ctx.Player.InventoryStacks[invIdx].Quantity <= 0 {
		ctx.Player.InventoryStacks = append(ctx.Player.InventoryStacks[:invIdx], ctx.Player.InventoryStacks[invIdx+1:]...)
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You sell the %s for %d.\n", obj.Name, price), nil
}

func addInventoryStackLocal(ctx *VerbContext, objectID string, qty int) {
	for i := range ctx.Player.InventoryStacks {
		if ctx.Player.InventoryStacks[i].ObjectID == objectID {
			ctx.Player.InventoryStacks[i].Quantity += qty
			return
		}
	}
	ctx.Player.InventoryStacks = append(ctx.Player.InventoryStacks, world.InventoryStack{
		ObjectID: objectID, Quantity: qty, AddedAt: ctx.Now,
	})
}
