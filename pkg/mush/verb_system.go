package mush

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func registerSystemVerbs(v map[string]VerbHandler) {
	v["HELP"] = handleHelp
	v["?"] = handleHelp
	v["SCORE"] = handleScore
	v["SC"] = handleScore
	v["QUIT"] = handleQuit
	v["TUTORIAL"] = handleTutorial
	v["SAVE"] = handleSave
	v["DEBUG"] = handleDebug
	v["@SETCONFIG"] = handleSetConfig
	v["@GETCONFIG"] = handleGetConfig
}

const helpText = `TinyMUSH verb list:
  Movement: N/S/E/W/U/D (and long forms), LOOK (L), EXITS, WHO, WHERE, MAP
  Items:    GET/TAKE, DROP, INVENTORY (INV, I), EXAMINE (X), USE, POKE
  Social:   SAY ('), WHISPER, EMOTE/POSE (:), OOC, TIME
  Shops:    LIST, BUY, SELL
  Board:    BOARD, POST subj body, READ id
  Mail:     MAIL [inbox|sent], SEND to subj body, RMAIL id, DMAIL id
  Banking:  BALANCE (BAL), DEPOSIT (DEP), WITHDRAW (WITH), BTRANSFER (BTRANS)
  Trading:  TRADE, OFFER, ACCEPT (ACC), REJECT/CANCEL, THISTORY
  People:   TALK, GREET
  Quests:   QUEST, QUEST LIST, QUEST ACCEPT <id>, ABANDON <id>
  Titles:   ACHIEVEMENTS (ACH), TITLE
  Pets:     COMPANION (COMP) LIST|TAME|FEED|MOUNT|DISMOUNT
  Housing:  HOUSING (HOUSE), RENT <template>, HOME, INVITE, UNINVITE,
            DESCRIBE, LOCK/UNLOCK, KICK, HISTORY
  System:   HELP, SCORE (SC), QUIT, TUTORIAL, SAVE, DEBUG,
            @SETCONFIG field value, @GETCONFIG [field]
`

func handleHelp(ctx *VerbContext) (string, error) {
	cfg, err := ctx.Store.GetWorldConfig()
	if err == nil && cfg.HelpCompanion != "" {
		return cfg.HelpCompanion + "\n" + helpText, nil
	}
	return helpText, nil
}

func handleScore(ctx *VerbContext) (string, error) {
	p := ctx.Player
	var b strings.Builder
	b.WriteString(p.DisplayName + "\n")
	if p.EquippedTitle != "" {
		b.WriteString("  Title:    " + p.EquippedTitle + "\n")
	}
	b.WriteString("  HP:       " + strconv.Itoa(p.Stats.HP) + "/" + strconv.Itoa(p.Stats.MaxHP) + "\n")
	b.WriteString("  MP:       " + strconv.Itoa(p.Stats.MP) + "/" + strconv.Itoa(p.Stats.MaxMP) + "\n")
	b.WriteString(fmt.Sprintf("  Currency: %d\n", p.Currency.BaseValue()))
	return b.String(), nil
}

func handleQuit(ctx *VerbContext) (string, error) {
	return "Returning to the BBS main menu.\n", nil
}

func handleTutorial(ctx *VerbContext) (string, error) {
	switch strings.ToUpper(ctx.Arg(0)) {
	case "SKIP":
		ctx.Player.TutorialState = world.TutorialState{Status: world.TutorialSkipped}
	case "RESTART":
		ctx.Player.TutorialState = world.TutorialState{Status: world.TutorialInProgress, Step: 0}
	case "START", "":
		ctx.Player.TutorialState = world.TutorialState{Status: world.TutorialInProgress, Step: 0}
	default:
		return "Usage: TUTORIAL [SKIP|RESTART|START]\n", nil
	}
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	if ctx.Player.TutorialState.Status == world.TutorialSkipped {
		return "Tutorial skipped.\n", nil
	}
	return "Tutorial started. Type LOOK to get your bearings.\n", nil
}

func handleSave(ctx *VerbContext) (string, error) {
	if err := ctx.Store.PutPlayer(ctx.Player); err != nil {
		return "", err
	}
	return "Your progress is saved.\n", nil
}

func handleDebug(ctx *VerbContext) (string, error) {
	return fmt.Sprintf(
		"player=%s room=%s hp=%d/%d currency=%d active_quests=%d\n",
		ctx.Player.Username, ctx.Room.ID, ctx.Player.Stats.HP, ctx.Player.Stats.MaxHP,
		ctx.Player.Currency.BaseValue(), len(ctx.Player.ActiveQuests),
	), nil
}

// configurableFields lists every WorldConfig field @SETCONFIG/
// @GETCONFIG will touch; anything else is rejected as unknown.
var configurableFields = []string{
	"welcome_message",
	"help_companion",
	"home_cooldown_seconds",
	"tavern_greeting",
	"shop_closed_message",
	"quest_complete_message",
}

func isConfigurableField(field string) bool {
	for _, f := range configurableFields {
		if f == field {
			return true
		}
	}
	return false
}

func setWorldConfigField(cfg world.WorldConfig, field, value string) (world.WorldConfig, error) {
	switch field {
	case "welcome_message":
		cfg.WelcomeMessage = value
	case "help_companion":
		cfg.HelpCompanion = value
	case "home_cooldown_seconds":
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("home_cooldown_seconds must be an integer")
		}
		cfg.HomeCooldownSeconds = secs
	default:
		if !isConfigurableField(field) {
			return cfg, fmt.Errorf("unknown field %q", field)
		}
		if cfg.Fields == nil {
			cfg.Fields = map[string]string{}
		}
		cfg.Fields[field] = value
	}
	return cfg, nil
}

func getWorldConfigField(cfg world.WorldConfig, field string) (string, bool) {
	switch field {
	case "welcome_message":
		return cfg.WelcomeMessage, true
	case "help_companion":
		return cfg.HelpCompanion, true
	case "home_cooldown_seconds":
		return strconv.FormatInt(cfg.HomeCooldownSeconds, 10), true
	default:
		v, ok := cfg.Fields[field]
		return v, ok
	}
}

func handleSetConfig(ctx *VerbContext) (string, error) {
	field := strings.ToLower(ctx.Arg(0))
	value := ctx.Rest(1)
	if field == "" || value == "" {
		return "Usage: @SETCONFIG <field> <value>\n", nil
	}
	cfg, err := ctx.Store.GetWorldConfig()
	if err != nil {
		return "", err
	}
	cfg, err = setWorldConfigField(cfg, field, value)
	if err != nil {
		return err.Error() + "\n", nil
	}
	cfg.UpdatedAt = ctx.Now
	cfg.UpdatedBy = ctx.Player.Username
	if err := ctx.Store.PutWorldConfig(cfg); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s set.\n", field), nil
}

func handleGetConfig(ctx *VerbContext) (string, error) {
	cfg, err := ctx.Store.GetWorldConfig()
	if err != nil {
		return "", err
	}
	field := strings.ToLower(ctx.Arg(0))
	if field == "" {
		var b strings.Builder
		b.WriteString("World config:\n")
		for _, f := range configurableFields {
			if v, ok := getWorldConfigField(cfg, f); ok && v != "" {
				fmt.Fprintf(&b, "  %s = %s\n", f, v)
			}
		}
		if cfg.UpdatedBy != "" {
			fmt.Fprintf(&b, "  (last set by %s at %s)\n", cfg.UpdatedBy, cfg.UpdatedAt.Format("01/02 15:04"))
		}
		return b.String(), nil
	}
	if !isConfigurableField(field) {
		return "Unknown field.\n", nil
	}
	v, _ := getWorldConfigField(cfg, field)
	return fmt.Sprintf("%s = %s\n", field, v), nil
}
