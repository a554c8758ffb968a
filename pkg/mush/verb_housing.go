package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerHousingVerbs(v map[string]VerbHandler) {
	v["HOUSING"] = handleHousing
	v["HOUSE"] = handleHousing
	v["RENT"] = handleRent
	v["HOME"] = handleHome
	v["INVITE"] = handleInvite
	v["UNINVITE"] = handleUninvite
	v["DESCRIBE"] = handleDescribe
	v["LOCK"] = handleHousingLockVerb
	v["UNLOCK"] = handleHousingUnlockVerb
	v["KICK"] = handleKick
	v["HISTORY"] = handleHistory
}

func handleHousing(ctx *VerbContext) (string, error) {
	owned, err := ctx.Store.GetPlayerHousingInstances(ctx.Player.Username)
	if err != nil {
		return "", err
	}
	if len(owned) == 0 {
		return "You don't own any housing. Visit a housing office and RENT a template.\n", nil
	}
	var b strings.Builder
	b.WriteString("Your properties:\n")
	for _, h := range owned {
		fmt.Fprintf(&b, "  %s (template %s)\n", h.ID, h.TemplateID)
	}
	return b.String(), nil
}

func handleRent(ctx *VerbContext) (string, error) {
	if !ctx.Room.HasFlag(world.RoomHousingOffice) {
		return "There's no housing office here.\n", nil
	}
	templateID := ctx.Arg(0)
	if templateID == "" {
		return fmt.Sprintf("Usage: RENT <template>. Available here: %s\n", strings.Join(ctx.Room.HousingFilterTags, ", ")), nil
	}
	if !world.MatchesHousingFilter(ctx.Room.HousingFilterTags, []string{templateID}) {
		return "That housing type isn't offered here.\n", nil
	}
	entryID := templateID + "_entry"
	instance, err := ctx.Store.CloneHousingTemplate(templateID, ctx.Player.Username, []string{entryID}, ctx.Now)
	if err != nil {
		return "", err
	}
	ctx.Player.PrimaryHousingID = instance.ID
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You now own a %s (instance %s). Type HOME to visit it.\n", templateID, instance.ID), nil
}

func handleHome(ctx *VerbContext) (string, error) {
	if ctx.Player.PrimaryHousingID == "" {
		return "You don't have a home yet. Visit a housing office and RENT one.\n", nil
	}
	if ctx.Player.LastHomeTeleport != nil {
		// WorldConfig.HomeCooldownSeconds is not consulted here: HOME has
		// no cooldown and can be used again at once. The current room's
		// NoTeleportOut flag is not checked either.
		_ = ctx.Player.LastHomeTeleport
	}
	inst, err := ctx.Store.GetHousingInstance(ctx.Player.PrimaryHousingID)
	if err != nil {
		return "Your home could not be found; it may have been reclaimed.\n", nil
	}
	ctx.Player.CurrentRoom = inst.EntryRoomID
	now := ctx.Now
	ctx.Player.LastHomeTeleport = &now
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	inst.LastVisitedAt = ctx.Now
	if err := ctx.Store.PutHousingInstance(inst); err != nil {
		return "", err
	}
	room, err := ctx.Store.GetRoom(inst.EntryRoomID)
	if err != nil {
		return "", err
	}
	return renderRoom(ctx.Deps, room, &ctx.Player), nil
}

// currentHousingInstance resolves the housing instance the caller is
// physically standing in, if any. Cloned instance rooms carry IDs of
// the form "<instance id>/<template room id>" (world.CloneHousingTemplate).
func currentHousingInstance(ctx *VerbContext) (world.HousingInstance, bool, error) {
	instanceID, _, ok := strings.Cut(ctx.Room.ID, "/")
	if !ok {
		return world.HousingInstance{}, false, nil
	}
	inst, err := ctx.Store.GetHousingInstance(instanceID)
	if err == world.ErrNotFound {
		return world.HousingInstance{}, false, nil
	} else if err != nil {
		return world.HousingInstance{}, false, err
	}
	return inst, true, nil
}

func isHousingGuest(inst world.HousingInstance, username string) bool {
	for _, g := range inst.Guests {
		if strings.EqualFold(g, username) {
			return true
		}
	}
	return false
}

func handleInvite(ctx *VerbContext) (string, error) {
	inst, inside, err := currentHousingInstance(ctx)
	if err != nil {
		return "", err
	}
	if !inside {
		return "You aren't inside a housing instance.\n", nil
	}
	if inst.Owner != ctx.Player.Username {
		return "Only the owner can invite guests.\n", nil
	}
	target := ctx.Arg(0)
	if target == "" {
		return "Usage: INVITE <player>\n", nil
	}
	if _, err := ctx.Store.GetPlayer(target); err == world.ErrNotFound {
		return "No such player.\n", nil
	} else if err != nil {
		return "", err
	}
	if isHousingGuest(inst, target) {
		return fmt.Sprintf("%s is already invited.\n", target), nil
	}
	inst.Guests = append(inst.Guests, target)
	if err := ctx.Store.PutHousingInstance(inst); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now invited.\n", target), nil
}

func handleUninvite(ctx *VerbContext) (string, error) {
	inst, inside, err := currentHousingInstance(ctx)
	if err != nil {
		return "", err
	}
	if !inside {
		return "You aren't inside a housing instance.\n", nil
	}
	if inst.Owner != ctx.Player.Username {
		return "Only the owner can remove guests.\n", nil
	}
	target := ctx.Arg(0)
	if target == "" {
		return "Usage: UNINVITE <player>\n", nil
	}
	removed := false
	guests := inst.Guests[:0]
	for _, g := range inst.Guests {
		if strings.EqualFold(g, target) {
			removed = true
			continue
		}
		guests = append(guests, g)
	}
	inst.Guests = guests
	if !removed {
		return fmt.Sprintf("%s wasn't invited.\n", target), nil
	}
	if err := ctx.Store.PutHousingInstance(inst); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is no longer invited.\n", target), nil
}

// handleDescribe edits the current room's long_desc when the caller
// owns the housing instance it belongs to, or is an invited guest.
func handleDescribe(ctx *VerbContext) (string, error) {
	inst, inside, err := currentHousingInstance(ctx)
	if err != nil {
		return "", err
	}
	if !inside {
		return "There's nothing to describe here.\n", nil
	}
	if inst.Owner != ctx.Player.Username && !isHousingGuest(inst, ctx.Player.Username) {
		return "You don't have permission to describe this room.\n", nil
	}
	text := ctx.Rest(0)
	if text == "" {
		return ctx.Room.LongDesc + "\n", nil
	}
	if len(text) > 500 {
		return "Description too long (max 500 characters).\n", nil
	}
	ctx.Room.LongDesc = text
	if err := ctx.Store.PutRoom(ctx.Room); err != nil {
		return "", err
	}
	return "Description updated.\n", nil
}

// handleHousingLock implements both LOCK and UNLOCK: with an item name
// argument it sets that owned inventory item's lock state; bare, it
// locks or unlocks the housing instance the caller is standing in.
func handleHousingLock(ctx *VerbContext, locked bool) (string, error) {
	if item := ctx.Rest(0); item != "" {
		obj, _, held := carriedObject(ctx, item)
		if !held {
			return "You aren't carrying that.\n", nil
		}
		if obj.Owner.Username != ctx.Player.Username {
			return "You don't own that.\n", nil
		}
		obj.Locked = locked
		if err := ctx.Store.PutObject(obj); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s the %s.\n", lockVerbWord(locked), obj.Name), nil
	}
	inst, inside, err := currentHousingInstance(ctx)
	if err != nil {
		return "", err
	}
	if !inside {
		return "There's nothing here to lock.\n", nil
	}
	if inst.Owner != ctx.Player.Username {
		return "Only the owner can do that.\n", nil
	}
	inst.Locked = locked
	if err := ctx.Store.PutHousingInstance(inst); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s your home.\n", lockVerbWord(locked)), nil
}

func lockVerbWord(locked bool) string {
	if locked {
		return "Locked"
	}
	return "Unlocked"
}

func handleHousingLockVerb(ctx *VerbContext) (string, error)   { return handleHousingLock(ctx, true) }
func handleHousingUnlockVerb(ctx *VerbContext) (string, error) { return handleHousingLock(ctx, false) }

// handleKick removes a guest (or every guest, with ALL) from the
// current housing instance, teleporting any of them currently inside
// it back to town_square.
func handleKick(ctx *VerbContext) (string, error) {
	inst, inside, err := currentHousingInstance(ctx)
	if err != nil {
		return "", err
	}
	if !inside {
		return "There's no one to kick here.\n", nil
	}
	if inst.Owner != ctx.Player.Username {
		return "Only the owner can do that.\n", nil
	}
	target := ctx.Arg(0)
	if target == "" {
		return "Usage: KICK <player>|ALL\n", nil
	}

	var toRemove []string
	if strings.EqualFold(target, "ALL") {
		toRemove = append(toRemove, inst.Guests...)
		inst.Guests = nil
	} else {
		guests := inst.Guests[:0]
		for _, g := range inst.Guests {
			if strings.EqualFold(g, target) {
				toRemove = append(toRemove, g)
				continue
			}
			guests = append(guests, g)
		}
		inst.Guests = guests
	}
	if len(toRemove) == 0 {
		return "No one by that name is invited.\n", nil
	}

	for _, username := range toRemove {
		p, err := ctx.Store.GetPlayer(username)
		if err != nil {
			continue
		}
		if strings.HasPrefix(p.CurrentRoom, inst.ID+"/") {
			p.CurrentRoom = world.RequiredStartLocationID
			_ = ctx.Store.PutPlayer(p)
		}
	}
	if err := ctx.Store.PutHousingInstance(inst); err != nil {
		return "", err
	}
	return "Removed.\n", nil
}

func handleHistory(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		return "Usage: HISTORY <item>\n", nil
	}
	obj, _, held := carriedObject(ctx, name)
	if !held {
		return "You aren't carrying that.\n", nil
	}
	if len(obj.OwnershipHistory) == 0 {
		return fmt.Sprintf("%s has no recorded ownership history.\n", obj.Name), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Ownership history of %s:\n", obj.Name)
	for _, t := range obj.OwnershipHistory {
		from, to := t.From, t.To
		if from == "" {
			from = "(world)"
		}
		if to == "" {
			to = "(world)"
		}
		fmt.Fprintf(&b, "  %s -> %s at %s\n", from, to, t.At.Format("01/02 15:04"))
	}
	return b.String(), nil
}
