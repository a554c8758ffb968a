package command

import (
	"strings"

	"github.com/smartyhall/meshbbs/pkg/session"
)

const helpText = "H]elp [M]essages [U]ser [Q]uit\nType WHERE to see your current location.\n"

func (p *Processor) handleMainMenu(sess *session.Session, raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))

	if resp, handled, err := p.tryAdminCommand(sess, strings.TrimSpace(raw)); handled {
		return resp, err
	}

	switch cmd {
	case "M", "MESSAGES":
		sess.State = session.Topics
		sess.ListPage = 1
		return p.renderTopicsPage(sess)
	case "U", "USER":
		sess.State = session.UserMenu
		return p.renderUserMenu(sess), nil
	case "T", "TINYHACK":
		if p.deps.Config.Games.TinyhackEnabled {
			sess.State = session.TinyHack
			return "[TinyHack] starting...\n", nil
		}
		return "TinyHack is not enabled on this board.\n", nil
	case "TM", "TINYMUSH", "MUSH":
		if p.deps.Config.Games.TinymushEnabled {
			sess.State = session.TinyMush
			return "[TinyMUSH] entering Old Towne...\n", nil
		}
		return "TinyMUSH is not enabled on this board.\n", nil
	case "Q", "QUIT", "GOODBYE", "BYE":
		sess.Logout(p.deps.Logger)
		return "Goodbye! 73s\n", nil
	case "H", "HELP", "?":
		return "Main Menu: [" + helpText, nil
	case "WHERE", "W":
		return "[BBS] You are at: Main Menu\n", nil
	default:
		return "Unknown command. Type HELP for options.\n" + mainMenuText, nil
	}
}
