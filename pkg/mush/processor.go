// Package mush implements the TinyMUSH shared-world game: a roughly
// hundred-verb command grammar (movement, items, shops, dialogue,
// quests, achievements, companions, banking, trading, housing) laid
// over the pkg/world store, plus the object action language that
// triggered objects script their behavior in.
package mush

import (
	"strings"
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbslog"
	"github.com/smartyhall/meshbbs/pkg/metrics"
	"github.com/smartyhall/meshbbs/pkg/world"
)

// Deps bundles the collaborators every verb handler needs.
type Deps struct {
	Store   *world.Store
	Metrics *metrics.Registry
	Logger  *bbslog.Logger
}

// VerbContext is the per-invocation state passed to a VerbHandler. A
// handler mutates Player/Room freely and is responsible for
// persisting whatever it changed through ctx.Store before returning.
type VerbContext struct {
	Deps
	Player world.PlayerRecord
	Room   world.RoomRecord
	Verb   string
	Args   []string
	Raw    string
	Now    time.Time
}

// Arg returns the i'th argument, or "" if there aren't that many.
func (c *VerbContext) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// Rest joins every argument from i onward with single spaces —
// handlers whose trailing argument is free text (SAY, EMOTE, OFFER
// item names) use this instead of Arg to avoid losing words after the
// first.
func (c *VerbContext) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}

// VerbHandler implements one verb (or a small alias group of verbs
// that share behavior, e.g. BALANCE/BAL).
type VerbHandler func(ctx *VerbContext) (string, error)

// Processor dispatches one line of TinyMUSH input to its verb's
// handler through a map from verb name to VerbHandler.
type Processor struct {
	deps  Deps
	verbs map[string]VerbHandler
}

// NewProcessor builds a dispatch table covering every verb category.
func NewProcessor(deps Deps) *Processor {
	v := make(map[string]VerbHandler)
	registerMovementVerbs(v)
	registerSocialVerbs(v)
	registerItemVerbs(v)
	registerShopVerbs(v)
	registerBoardVerbs(v)
	registerBankVerbs(v)
	registerTradeVerbs(v)
	registerDialogueVerbs(v)
	registerQuestVerbs(v)
	registerAchievementVerbs(v)
	registerCompanionVerbs(v)
	registerHousingVerbs(v)
	registerSystemVerbs(v)
	return &Processor{deps: deps, verbs: v}
}

// Process parses raw as "VERB arg1 arg2 ..." and dispatches it to the
// matching handler, bootstrapping username's PlayerRecord at the
// landing gazebo on first entry.
func (p *Processor) Process(username, raw string) (string, error) {
	player, err := p.deps.Store.GetPlayer(username)
	if err == world.ErrNotFound {
		player = bootstrapPlayer(username)
		if err := p.deps.Store.PutPlayer(player); err != nil {
			return "", err
		}
		if p.deps.Metrics != nil {
			p.deps.Metrics.GameEnter("tinymush")
		}
	} else if err != nil {
		return "", err
	}

	room, err := p.deps.Store.GetRoom(player.CurrentRoom)
	if err != nil {
		room, err = p.deps.Store.GetRoom(world.RequiredLandingLocationID)
		if err != nil {
			return "", err
		}
		player.CurrentRoom = room.ID
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "Type HELP for the TinyMUSH verb list.\n", nil
	}
	verb := strings.ToUpper(fields[0])
	args := fields[1:]

	handler, ok := p.verbs[verb]
	if !ok {
		if dir, ok := world.DirectionAliases[verb]; ok {
			handler = movementHandler(dir)
		} else {
			return "Unknown verb. Type HELP for the TinyMUSH verb list.\n", nil
		}
	}

	ctx := &VerbContext{
		Deps: p.deps, Player: player, Room: room,
		Verb: verb, Args: args, Raw: raw, Now: time.Now().UTC(),
	}
	return handler(ctx)
}

func bootstrapPlayer(username string) world.PlayerRecord {
	return world.PlayerRecord{
		Username:      username,
		DisplayName:   username,
		CurrentRoom:   world.RequiredLandingLocationID,
		Currency:      world.Decimal(50),
		Stats:         world.PlayerStats{HP: 100, MaxHP: 100, MP: 20, MaxMP: 20},
		TutorialState: world.TutorialState{Status: world.TutorialNotStarted},
		SchemaVersion: 1,
	}
}
