package mush

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerQuestVerbs(v map[string]VerbHandler) {
	v["QUEST"] = handleQuest
	v["QUESTS"] = handleQuest
	v["ABANDON"] = handleAbandonQuest
}

// handleQuest dispatches the three QUEST forms: bare (active quests),
// LIST (offerable quests), ACCEPT <id> (join one). Anything else is
// treated as QUEST <id>, showing that quest's detail.
func handleQuest(ctx *VerbContext) (string, error) {
	switch strings.ToUpper(ctx.Arg(0)) {
	case "":
		return renderActiveQuests(ctx), nil
	case "LIST":
		return renderAvailableQuests(ctx)
	case "ACCEPT":
		return acceptQuest(ctx, ctx.Arg(1))
	default:
		return questDetail(ctx, ctx.Arg(0))
	}
}

func renderActiveQuests(ctx *VerbContext) string {
	if len(ctx.Player.ActiveQuests) == 0 && len(ctx.Player.CompletedQuests) == 0 {
		return "You have no quests underway.\n"
	}
	var b strings.Builder
	for id, progress := range ctx.Player.ActiveQuests {
		q, err := ctx.Store.GetQuest(id)
		if err != nil {
			continue
		}
		marker := ""
		if questObjectivesComplete(q, progress) {
			marker = " [!]"
		}
		fmt.Fprintf(&b, "[Active]%s %s - %s\n", marker, q.Name, q.Description)
		for i, obj := range q.Objectives {
			fmt.Fprintf(&b, "  - %s: %s (%d/%d)\n", obj.Kind, obj.Target, progress.Counts[i], obj.Count)
		}
	}
	for id, done := range ctx.Player.CompletedQuests {
		if !done {
			continue
		}
		q, err := ctx.Store.GetQuest(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "[Done] %s\n", q.Name)
	}
	return b.String()
}

func questObjectivesComplete(q world.QuestRecord, progress world.QuestProgress) bool {
	for i, obj := range q.Objectives {
		if progress.Counts[i] < obj.Count {
			return false
		}
	}
	return true
}

func renderAvailableQuests(ctx *VerbContext) (string, error) {
	ids, err := ctx.Store.ListQuestIDs()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Available quests:\n")
	found := false
	for _, id := range ids {
		q, err := ctx.Store.GetQuest(id)
		if err != nil {
			continue
		}
		if canAcceptQuest(ctx, q) {
			fmt.Fprintf(&b, "  %s - %s\n", q.ID, q.Name)
			found = true
		}
	}
	if !found {
		return "No quests are available to you right now.\n", nil
	}
	return b.String(), nil
}

// canAcceptQuest reports whether q can be offered to the player: not
// already active or completed, and its prerequisite (if any) done.
func canAcceptQuest(ctx *VerbContext, q world.QuestRecord) bool {
	if _, active := ctx.Player.ActiveQuests[q.ID]; active {
		return false
	}
	if ctx.Player.CompletedQuests[q.ID] {
		return false
	}
	if q.Prerequisite != "" && !ctx.Player.CompletedQuests[q.Prerequisite] {
		return false
	}
	return true
}

func acceptQuest(ctx *VerbContext, id string) (string, error) {
	if id == "" {
		return "Usage: QUEST ACCEPT <id>\n", nil
	}
	q, err := ctx.Store.GetQuest(id)
	if err == world.ErrNotFound {
		return "No such quest.\n", nil
	} else if err != nil {
		return "", err
	}
	if !canAcceptQuest(ctx, q) {
		return "You can't accept that quest right now.\n", nil
	}
	if ctx.Player.ActiveQuests == nil {
		ctx.Player.ActiveQuests = map[string]world.QuestProgress{}
	}
	ctx.Player.ActiveQuests[q.ID] = world.QuestProgress{Counts: map[int]int{}}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return fmt.Sprintf("Quest accepted: %s\n", q.Name), nil
}

func questDetail(ctx *VerbContext, id string) (string, error) {
	q, err := ctx.Store.GetQuest(id)
	if err == world.ErrNotFound {
		return "No such quest.\n", nil
	} else if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", q.Name, q.Description)
	for _, obj := range q.Objectives {
		fmt.Fprintf(&b, "  - %s: %s (x%d)\n", obj.Kind, obj.Target, obj.Count)
	}
	return b.String(), nil
}

func handleAbandonQuest(ctx *VerbContext) (string, error) {
	id := ctx.Arg(0)
	if id == "" {
		return "Usage: ABANDON <id>\n", nil
	}
	if _, active := ctx.Player.ActiveQuests[id]; !active {
		return "You aren't on that quest.\n", nil
	}
	delete(ctx.Player.ActiveQuests, id)
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return "Quest abandoned.\n", nil
}

// advanceQuestObjective increments a player's progress counter for
// every active quest with a matching objective kind/target, completing
// and rewarding the quest once every objective's count is met. The
// movement/dialogue/item verbs call this when their action matches a
// trackable objective kind.
func advanceQuestObjective(ctx *VerbContext, kind world.QuestObjectiveKind, target string) error {
	changed := false
	for questID, progress := range ctx.Player.ActiveQuests {
		q, err := ctx.Store.GetQuest(questID)
		if err != nil {
			continue
		}
		if progress.Counts == nil {
			progress.Counts = map[int]int{}
		}
		allMet := true
		for i, obj := range q.Objectives {
			if obj.Kind == kind && obj.Target == target {
				progress.Counts[i]++
				changed = true
			}
			if progress.Counts[i] < obj.Count {
				allMet = false
			}
		}
		ctx.Player.ActiveQuests[questID] = progress
		if allMet {
			completeQuest(ctx, questID, q)
		}
	}
	if changed {
		return ctx.Store.PutPlayer(ctx.Player)
	}
	return nil
}

func completeQuest(ctx *VerbContext, questID string, q world.QuestRecord) {
	delete(ctx.Player.ActiveQuests, questID)
	if ctx.Player.CompletedQuests == nil {
		ctx.Player.CompletedQuests = map[string]bool{}
	}
	ctx.Player.CompletedQuests[questID] = true
	if q.Reward.Currency > 0 {
		if credited, err := ctx.Player.Currency.Add(world.Decimal(q.Reward.Currency)); err == nil {
			ctx.Player.Currency = credited
		}
	}
	for _, itemID := range q.Reward.Items {
		addInventoryStackLocal(ctx, itemID, 1)
	}
}
