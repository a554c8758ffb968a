package mush

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerDialogueVerbs(v map[string]VerbHandler) {
	v["TALK"] = handleTalk
	v["GREET"] = handleTalk
}

func npcHere(ctx *VerbContext, name string) (world.NpcRecord, bool, error) {
	npcs, err := ctx.Store.GetNpcsInRoom(ctx.Room.ID)
	if err != nil {
		return world.NpcRecord{}, false, err
	}
	name = strings.ToLower(name)
	for _, n := range npcs {
		if strings.Contains(strings.ToLower(n.Name), name) || strings.ToLower(n.ID) == name {
			return n, true, nil
		}
	}
	if len(npcs) == 1 && name == "" {
		return npcs[0], true, nil
	}
	return world.NpcRecord{}, false, nil
}

// handleTalk walks one step of an NPC's dialogue tree. TALK <npc> with
// no further argument starts (or restarts) at "greeting"; TALK <npc>
// <choice number> answers one of the "greeting" node's choices. No
// dialogue position is kept between calls, so a choice number typed
// after a deeper node was shown is still looked up in the greeting
// node's choice list.
func handleTalk(ctx *VerbContext) (string, error) {
	args := ctx.Args
	npcName := ""
	nodeID := "greeting"
	choiceIdx := -1

	if len(args) > 0 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			choiceIdx = n
			npcName = strings.Join(args[:len(args)-1], " ")
		} else {
			npcName = strings.Join(args, " ")
		}
	}

	npc, ok, err := npcHere(ctx, npcName)
	if err != nil {
		return "", err
	}
	if !ok {
		return "There's no one here by that name to talk to.\n", nil
	}

	if choiceIdx >= 0 {
		return applyDialogChoice(ctx, npc, nodeID, choiceIdx)
	}
	if err := advanceQuestObjective(ctx, world.ObjNpcTalk, npc.ID); err != nil {
		return "", err
	}
	return renderDialogNode(ctx, npc, nodeID), nil
}

func renderDialogNode(ctx *VerbContext, npc world.NpcRecord, nodeID string) string {
	node, ok := npc.DialogTree[nodeID]
	if !ok {
		if text, ok := npc.Dialog[nodeID]; ok {
			return fmt.Sprintf("%s says: \"%s\"\n", npc.Name, text)
		}
		return fmt.Sprintf("%s has nothing more to say.\n", npc.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s says: \"%s\"\n", npc.Name, node.Text)
	n := 0
	for _, choice := range node.Choices {
		if !choice.Condition.Evaluate(&ctx.Player) {
			continue
		}
		n++
		fmt.Fprintf(&b, "  [%d] %s\n", n, choice.Prompt)
	}
	if n > 0 {
		b.WriteString("Reply with TALK " + npc.Name + " <number>.\n")
	}
	return b.String()
}

func applyDialogChoice(ctx *VerbContext, npc world.NpcRecord, nodeID string, choiceIdx int) (string, error) {
	node, ok := npc.DialogTree[nodeID]
	if !ok {
		return "There's nothing to reply to.\n", nil
	}
	visible := make([]world.DialogChoice, 0, len(node.Choices))
	for _, c := range node.Choices {
		if c.Condition.Evaluate(&ctx.Player) {
			visible = append(visible, c)
		}
	}
	if choiceIdx < 1 || choiceIdx > len(visible) {
		return "That's not one of the options offered.\n", nil
	}
	choice := visible[choiceIdx-1]

	for _, action := range choice.Actions {
		if err := action.Apply(&ctx.Player); err != nil {
			return fmt.Sprintf("That didn't work: %v\n", err), nil
		}
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}

	if choice.Goto == "exit" || choice.Goto == "" {
		return fmt.Sprintf("%s nods and returns to their business.\n", npc.Name), nil
	}
	return renderDialogNode(ctx, npc, choice.Goto), nil
}
