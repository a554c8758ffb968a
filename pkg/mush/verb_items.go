package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerItemVerbs(v map[string]VerbHandler) {
	v["GET"] = handleGet
	v["TAKE"] = handleGet
	v["DROP"] = handleDrop
	v["INVENTORY"] = handleInventory
	v["INV"] = handleInventory
	v["I"] = handleInventory
	v["EXAMINE"] = handleExamine
	v["X"] = handleExamine
	v["USE"] = handleUse
	v["POKE"] = handlePoke
}

func findObjectByName(ctx *VerbContext, candidates []world.ObjectRecord, name string) (world.ObjectRecord, bool) {
	name = strings.ToLower(name)
	for _, o := range candidates {
		if strings.ToLower(o.Name) == name || strings.ToLower(o.ID) == name || strings.Contains(strings.ToLower(o.Name), name) {
			return o, true
		}
	}
	return world.ObjectRecord{}, false
}

func handleGet(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Get what?\n", nil
	}
	objs, err := ctx.Store.GetObjectsInRoom(ctx.Room.ID)
	if err != nil {
		return "", err
	}
	obj, ok := findObjectByName(ctx, objs, name)
	if !ok {
		return "You don't see that here.\n", nil
	}
	if !obj.Takeable {
		return fmt.Sprintf("You can't take the %s.\n", obj.Name), nil
	}

	obj.Owner = world.ObjectOwner{Username: ctx.Player.Username}
	obj.Location = ""
	obj.OwnershipHistory = append(obj.OwnershipHistory, world.OwnershipTransfer{
		From: "", To: ctx.Player.Username, At: ctx.Now,
	})
	if err := ctx.Store.PutObject(obj); err != nil {
		return "", err
	}
	found := false
	for i := range ctx.Player.InventoryStacks {
		if ctx.Player.InventoryStacks[i].ObjectID == obj.ID {
			ctx.Player.InventoryStacks[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		ctx.Player.InventoryStacks = append(ctx.Player.InventoryStacks, world.InventoryStack{
			ObjectID: obj.ID, Quantity: 1, AddedAt: ctx.Now,
		})
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You take the %s.\n", obj.Name), nil
}

func handleDrop(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Drop what?\n", nil
	}
	idx := -1
	var objID string
	for i, stack := range ctx.Player.InventoryStacks {
		obj, err := ctx.Store.GetObject(stack.ObjectID)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(obj.Name), strings.ToLower(name)) {
			idx = i
			objID = obj.ID
			break
		}
	}
	if idx == -1 {
		return "You aren't carrying that.\n", nil
	}

	obj, err := ctx.Store.GetObject(objID)
	if err != nil {
		return "", err
	}
	obj.Owner = world.ObjectOwner{World: true}
	obj.Location = ctx.Room.ID
	obj.OwnershipHistory = append(obj.OwnershipHistory, world.OwnershipTransfer{
		From: ctx.Player.Username, To: "", At: ctx.Now,
	})
	if err := ctx.Store.PutObject(obj); err != nil {
		return "", err
	}

	ctx.Player.InventoryStacks[idx].Quantity--
	if ctx.Player.InventoryStacks[idx].Quantity <= 0 {
		ctx.Player.InventoryStacks = append(ctx.Player.InventoryStacks[:idx], ctx.Player.InventoryStacks[idx+1:]...)
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You drop the %s.\n", obj.Name), nil
}

func handleInventory(ctx *VerbContext) (string, error) {
	if len(ctx.Player.InventoryStacks) == 0 {
		return "You are carrying nothing.\n", nil
	}
	var b strings.Builder
	b.WriteString("You are carrying:\n")
	for _, stack := range ctx.Player.InventoryStacks {
		obj, err := ctx.Store.GetObject(stack.ObjectID)
		name := stack.ObjectID
		if err == nil {
			name = obj.Name
		}
		fmt.Fprintf(&b, "  %s x%d\n", name, stack.Quantity)
	}
	return b.String(), nil
}

func carriedObject(ctx *VerbContext, name string) (world.ObjectRecord, int, bool) {
	name = strings.ToLower(name)
	for i, stack := range ctx.Player.InventoryStacks {
		obj, err := ctx.Store.GetObject(stack.ObjectID)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(obj.Name), name) || strings.ToLower(obj.ID) == name {
			return obj, i, true
		}
	}
	return world.ObjectRecord{}, -1, false
}

func handleExamine(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Examine what?\n", nil
	}
	obj, _, ok := carriedObject(ctx, name)
	if !ok {
		roomObjs, err := ctx.Store.GetObjectsInRoom(ctx.Room.ID)
		if err != nil {
			return "", err
		}
		obj, ok = findObjectByName(ctx, roomObjs, name)
	}
	if !ok {
		return "You don't see that here.\n", nil
	}

	text, effects, err := runTrigger(ctx, obj, world.OnLook)
	if err != nil {
		return "", err
	}
	if text == "" {
		text = obj.Description
	}
	if _, _, err := applyEffects(ctx, effects); err != nil {
		return "", err
	}
	return text + "\n", nil
}

func handleUse(ctx *VerbContext) (string, error) {
	return triggerVerb(ctx, world.OnUse, "Use")
}

func handlePoke(ctx *VerbContext) (string, error) {
	return triggerVerb(ctx, world.OnPoke, "Poke")
}

func triggerVerb(ctx *VerbContext, trigger world.ObjectTrigger, verbWord string) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return fmt.Sprintf("%s what?\n", verbWord), nil
	}
	obj, invIdx, ok := carriedObject(ctx, name)
	if !ok {
		roomObjs, err := ctx.Store.GetObjectsInRoom(ctx.Room.ID)
		if err != nil {
			return "", err
		}
		obj, ok = findObjectByName(ctx, roomObjs, name)
		invIdx = -1
	}
	if !ok {
		return "You don't see that here.\n", nil
	}

	text, effects, err := runTrigger(ctx, obj, trigger)
	if err != nil {
		return "", err
	}

	consumed, messages, err := applyEffects(ctx, effects)
	if err != nil {
		return "", err
	}
	messages = append(messages, textIfNonEmpty(text)...)
	if len(messages) == 0 {
		messages = []string{"Nothing happens."}
	}
	if consumed && invIdx >= 0 {
		ctx.Player.InventoryStacks[invIdx].Quantity--
		if ctx.Player.InventoryStacks[invIdx].Quantity <= 0 {
			ctx.Player.InventoryStacks = append(ctx.Player.InventoryStacks[:invIdx], ctx.Player.InventoryStacks[invIdx+1:]...)
		}
		if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
			return "", err
		}
	}
	return strings.Join(messages, "\n") + "\n", nil
}

func textIfNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// runTrigger evaluates obj's action script for trigger, returning the
// script's resulting value (a plain ternary/literal result, used by
// OnLook scripts) and the side effects it requested. It does not
// mutate anything itself.
func runTrigger(ctx *VerbContext, obj world.ObjectRecord, trigger world.ObjectTrigger) (string, []SideEffect, error) {
	script, ok := obj.Actions[trigger]
	if !ok {
		return "", nil, nil
	}
	expr, err := Parse(script)
	if err != nil {
		return "", nil, fmt.Errorf("mush: bad action script on %s: %w", obj.ID, err)
	}
	actx := &ActionContext{Player: &ctx.Player, Room: ctx.Room}
	val, effects := expr.Eval(actx)
	text, _ := val.(string)
	return text, effects, nil
}

// applyEffects commits the mutations a trigger script requested and
// returns whether the triggering object should be consumed plus any
// message() text queued for display.
func applyEffects(ctx *VerbContext, effects []SideEffect) (consumed bool, messages []string, err error) {
	playerChanged := false
	for _, e := range effects {
		switch e.Kind {
		case EffectHeal:
			ctx.Player.Stats.HP += int(e.Amount)
			if ctx.Player.Stats.HP > ctx.Player.Stats.MaxHP {
				ctx.Player.Stats.HP = ctx.Player.Stats.MaxHP
			}
			playerChanged = true
		case EffectGiveCurrency:
			amt, addErr := ctx.Player.Currency.Add(world.Decimal(e.Amount))
			if addErr != nil {
				return false, messages, addErr
			}
			ctx.Player.Currency = amt
			playerChanged = true
		case EffectConsume:
			consumed = true
		case EffectTeleport:
			ctx.Player.CurrentRoom = e.Text
			playerChanged = true
		case EffectUnlockExit:
			ctx.Room.Locked = false
			if err := ctx.Store.PutRoom(ctx.Room); err != nil {
				return false, messages, err
			}
		case EffectMessage:
			messages = append(messages, e.Text)
		}
	}
	if playerChanged {
		if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
			return false, messages, err
		}
	}
	return consumed, messages, nil
}
