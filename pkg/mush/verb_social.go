package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerSocialVerbs(v map[string]VerbHandler) {
	v["SAY"] = handleSay
	v["'"] = handleSay
	v["EMOTE"] = handleEmote
	v["POSE"] = handleEmote
	v[":"] = handleEmote
	v["WHISPER"] = handleWhisper
	v["OOC"] = handleOOC
	v["TIME"] = handleTime
}

func handleSay(ctx *VerbContext) (string, error) {
	text := ctx.Rest(0)
	if text == "" {
		return "Say what?\n", nil
	}
	return fmt.Sprintf("You say, \"%s\"\n", text), nil
}

func handleEmote(ctx *VerbContext) (string, error) {
	text := ctx.Rest(0)
	if text == "" {
		return "Emote what?\n", nil
	}
	return fmt.Sprintf("%s %s\n", ctx.Player.DisplayName, text), nil
}

// handleWhisper requires the target to be present in the caller's
// current room and not the caller themself.
func handleWhisper(ctx *VerbContext) (string, error) {
	target := ctx.Arg(0)
	text := ctx.Rest(1)
	if target == "" || text == "" {
		return "Usage: WHISPER <player> <message>\n", nil
	}
	if strings.EqualFold(target, ctx.Player.Username) {
		return "You can't whisper to yourself.\n", nil
	}
	p, err := ctx.Store.GetPlayer(target)
	if err == world.ErrNotFound {
		return "They aren't here.\n", nil
	} else if err != nil {
		return "", err
	}
	if p.CurrentRoom != ctx.Room.ID {
		return "They aren't here.\n", nil
	}
	return fmt.Sprintf("You whisper to %s, \"%s\"\n", p.DisplayName, text), nil
}

func handleOOC(ctx *VerbContext) (string, error) {
	text := ctx.Rest(0)
	if text == "" {
		return "Say what, out of character?\n", nil
	}
	return fmt.Sprintf("[OOC] %s: %s\n", ctx.Player.DisplayName, text), nil
}

func handleTime(ctx *VerbContext) (string, error) {
	return "The world clock reads " + ctx.Now.Format("15:04 MST") + ".\n", nil
}
