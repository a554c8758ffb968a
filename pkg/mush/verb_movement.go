package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerMovementVerbs(v map[string]VerbHandler) {
	v["LOOK"] = handleLook
	v["L"] = handleLook
	v["EXITS"] = handleExits
	v["WHO"] = handleWhoRoom
	v["WHERE"] = handleWhere
	v["MAP"] = handleMap
}

// movementHandler returns a handler that walks the player through the
// given exit if the current room has one.
func movementHandler(dir world.Direction) VerbHandler {
	return func(ctx *VerbContext) (string, error) {
		dest, ok := ctx.Room.Exits[dir]
		if !ok {
			return fmt.Sprintf("You can't go %s from here.\n", dir), nil
		}
		if ctx.Room.HasFlag(world.RoomNoTeleportOut) && dir == world.Up {
			return "Something prevents you from leaving that way.\n", nil
		}
		destRoom, err := ctx.Store.GetRoom(dest)
		if err != nil {
			return "", err
		}
		ctx.Player.CurrentRoom = destRoom.ID
		if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
			return "", err
		}
		if err := advanceQuestObjective(ctx, world.ObjRoomVisit, destRoom.ID); err != nil {
			return "", err
		}
		if err := advanceAchievement(ctx, world.TriggerRoomVisits, 1); err != nil {
			return "", err
		}
		return renderRoom(ctx.Deps, destRoom, &ctx.Player), nil
	}
}

func handleLook(ctx *VerbContext) (string, error) {
	return renderRoom(ctx.Deps, ctx.Room, &ctx.Player), nil
}

func handleExits(ctx *VerbContext) (string, error) {
	if len(ctx.Room.Exits) == 0 {
		return "There are no obvious exits.\n", nil
	}
	var dirs []string
	for dir := range ctx.Room.Exits {
		dirs = append(dirs, string(dir))
	}
	return "Exits: " + strings.Join(dirs, ", ") + "\n", nil
}

func handleWhoRoom(ctx *VerbContext) (string, error) {
	ids, err := ctx.Store.ListPlayerIDs()
	if err != nil {
		return "", err
	}
	var here []string
	for _, id := range ids {
		p, err := ctx.Store.GetPlayer(id)
		if err != nil {
			continue
		}
		if p.CurrentRoom == ctx.Room.ID {
			here = append(here, p.DisplayName)
		}
	}
	if len(here) == 0 {
		return "You are alone here.\n", nil
	}
	return "Also here: " + strings.Join(here, ", ") + "\n", nil
}

func handleWhere(ctx *VerbContext) (string, error) {
	return fmt.Sprintf("You are in %s (%s).\n", ctx.Room.Name, ctx.Room.ID), nil
}

// handleMap renders the current room's exits alongside each
// destination's display name, a minimal local "you are here" map.
func handleMap(ctx *VerbContext) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", ctx.Room.Name)
	if len(ctx.Room.Exits) == 0 {
		b.WriteString("  (no obvious exits)\n")
		return b.String(), nil
	}
	for dir, destID := range ctx.Room.Exits {
		label := destID
		if dest, err := ctx.Store.GetRoom(destID); err == nil {
			label = dest.Name
		}
		fmt.Fprintf(&b, "  %s -> %s\n", dir, label)
	}
	return b.String(), nil
}

func renderRoom(deps Deps, room world.RoomRecord, p *world.PlayerRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", room.Name, room.LongDesc)

	if objs, err := deps.Store.GetObjectsInRoom(room.ID); err == nil {
		for _, o := range objs {
			fmt.Fprintf(&b, "A %s is here.\n", o.Name)
		}
	}
	if npcs, err := deps.Store.GetNpcsInRoom(room.ID); err == nil {
		for _, n := range npcs {
			fmt.Fprintf(&b, "%s is here.\n", n.Name)
		}
	}
	if shops, err := deps.Store.GetShopsInLocation(room.ID); err == nil {
		for _, sh := range shops {
			fmt.Fprintf(&b, "%s is here. Type LIST to see what's for sale.\n", sh.Name)
		}
	}
	if len(room.Exits) > 0 {
		var dirs []string
		for dir := range room.Exits {
			dirs = append(dirs, string(dir))
		}
		fmt.Fprintf(&b, "Exits: %s\n", strings.Join(dirs, ", "))
	}
	return b.String()
}
