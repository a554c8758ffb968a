package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerCompanionVerbs(v map[string]VerbHandler) {
	v["COMPANION"] = handleCompanion
	v["COMP"] = handleCompanion
}

func handleCompanion(ctx *VerbContext) (string, error) {
	sub := strings.ToUpper(ctx.Arg(0))
	switch sub {
	case "", "LIST":
		return listCompanions(ctx), nil
	case "TAME":
		return tameCompanion(ctx)
	case "FEED":
		return feedCompanion(ctx)
	case "MOUNT":
		return mountCompanion(ctx)
	case "DISMOUNT":
		ctx.Player.MountedCompanion = ""
		if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
			return "", err
		}
		return "You dismount.\n", nil
	default:
		return "Usage: COMPANION LIST|TAME|FEED|MOUNT|DISMOUNT\n", nil
	}
}

func listCompanions(ctx *VerbContext) string {
	if len(ctx.Player.Companions) == 0 {
		return "You have no companions.\n"
	}
	var b strings.Builder
	for _, c := range ctx.Player.Companions {
		mounted := ""
		if ctx.Player.MountedCompanion == c.Name {
			mounted = " (mounted)"
		}
		fmt.Fprintf(&b, "%s the %s - loyalty %d%s\n", c.Name, c.Type, c.Loyalty, mounted)
	}
	return b.String()
}

func tameCompanion(ctx *VerbContext) (string, error) {
	name := ctx.Rest(1)
	if name == "" {
		return "Usage: COMPANION TAME <name>\n", nil
	}
	ctx.Player.Companions = append(ctx.Player.Companions, world.CompanionRecord{
		Name: name, Type: "Stray", Loyalty: 1, TamedAt: ctx.Now,
	})
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s warms up to you.\n", name), nil
}

func feedCompanion(ctx *VerbContext) (string, error) {
	name := ctx.Rest(1)
	for i := range ctx.Player.Companions {
		if strings.EqualFold(ctx.Player.Companions[i].Name, name) {
			ctx.Player.Companions[i].Loyalty++
			if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s's loyalty grows.\n", name), nil
		}
	}
	return "You don't have a companion by that name.\n", nil
}

func mountCompanion(ctx *VerbContext) (string, error) {
	name := ctx.Rest(1)
	for _, c := range ctx.Player.Companions {
		if strings.EqualFold(c.Name, name) {
			ctx.Player.MountedCompanion = c.Name
			if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
				return "", err
			}
			return fmt.Sprintf("You mount %s.\n", c.Name), nil
		}
	}
	return "You don't have a companion by that name.\n", nil
}
