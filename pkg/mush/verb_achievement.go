package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerAchievementVerbs(v map[string]VerbHandler) {
	v["ACHIEVEMENTS"] = handleAchievements
	v["ACHIEVE"] = handleAchievements
	v["ACHIEV"] = handleAchievements
	v["ACH"] = handleAchievements
	v["TITLE"] = handleTitle
	v["TITLES"] = handleTitle
}

func handleAchievements(ctx *VerbContext) (string, error) {
	if len(ctx.Player.EarnedAchievements) == 0 {
		return "You haven't earned any achievements yet.\n", nil
	}
	var b strings.Builder
	b.WriteString("Achievements earned:\n")
	for id, earned := range ctx.Player.EarnedAchievements {
		if !earned {
			continue
		}
		a, err := ctx.Store.GetAchievement(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %s - %s\n", a.Name, a.Description)
	}
	return b.String(), nil
}

// advanceAchievement increments a player's counter for trigger and
// grants the achievement (plus its title, if any) once threshold is
// met.
func advanceAchievement(ctx *VerbContext, trigger world.AchievementTrigger, by int) error {
	ids, err := ctx.Store.ListAchievementIDs()
	if err != nil {
		return err
	}
	changed := false
	for _, id := range ids {
		a, err := ctx.Store.GetAchievement(id)
		if err != nil || a.Trigger != trigger {
			continue
		}
		if ctx.Player.EarnedAchievements[id] {
			continue
		}
		if ctx.Player.AchievementCounts == nil {
			ctx.Player.AchievementCounts = map[string]int{}
		}
		ctx.Player.AchievementCounts[id] += by
		changed = true
		if ctx.Player.AchievementCounts[id] >= a.Threshold {
			if ctx.Player.EarnedAchievements == nil {
				ctx.Player.EarnedAchievements = map[string]bool{}
			}
			ctx.Player.EarnedAchievements[id] = true
			if a.Title != "" {
				if ctx.Player.EarnedTitles == nil {
					ctx.Player.EarnedTitles = map[string]bool{}
				}
				ctx.Player.EarnedTitles[a.Title] = true
			}
		}
	}
	if changed {
		return ctx.Store.PutPlayer(ctx.Player)
	}
	return nil
}

func handleTitle(ctx *VerbContext) (string, error) {
	name := ctx.Rest(0)
	if name == "" {
		if len(ctx.Player.EarnedTitles) == 0 {
			return "You haven't earned any titles yet.\n", nil
		}
		var b strings.Builder
		b.WriteString("Titles earned:\n")
		for t, earned := range ctx.Player.EarnedTitles {
			if earned {
				fmt.Fprintf(&b, "  %s\n", t)
			}
		}
		if ctx.Player.EquippedTitle != "" {
			fmt.Fprintf(&b, "Currently wearing: %s\n", ctx.Player.EquippedTitle)
		}
		return b.String(), nil
	}
	if !ctx.Player.EarnedTitles[name] {
		return "You haven't earned that title.\n", nil
	}
	ctx.Player.EquippedTitle = name
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("You are now known as %s the %s.\n", ctx.Player.DisplayName, name), nil
}
