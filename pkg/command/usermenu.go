package command

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/session"
)

func (p *Processor) renderUserMenu(sess *session.Session) string {
	return fmt.Sprintf(
		"User Menu:\nUsername: %s\nLevel: %d (%s)\nLogin time: %s\n[I]nfo [P]assword [B]ack\n",
		sess.DisplayName(), sess.UserLevel, bbs.RoleName(sess.UserLevel), sess.LoginTime.Format("01/02 15:04"),
	)
}

func (p *Processor) handleUserMenu(sess *session.Session, raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	switch cmd {
	case "B", "BACK":
		sess.State = session.MainMenu
		return mainMenuText, nil
	case "I", "INFO":
		posts, err := p.deps.Store.CountUserPosts(sess.Username)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Posts: %d\n", posts) + p.renderUserMenu(sess), nil
	case "P", "PASSWORD":
		sess.State = session.UserChangePassCurrent
		return "Enter current password:\n", nil
	case "H", "HELP", "?":
		return "User Menu: [I]nfo [P]assword [B]ack\n", nil
	default:
		return "Unrecognized. H for help.\n", nil
	}
}

func (p *Processor) handleUserChangePassCurrent(sess *session.Session, raw string) (string, error) {
	_, ok, err := p.deps.Store.VerifyPassword(sess.Username, raw)
	if err != nil {
		return "", err
	}
	if !ok {
		sess.State = session.UserMenu
		return "Incorrect password.\n" + p.renderUserMenu(sess), nil
	}
	sess.State = session.UserChangePassNew
	return "Enter new password (8-128 characters):\n", nil
}

func (p *Processor) handleUserChangePassNew(sess *session.Session, raw string) (string, error) {
	if err := p.deps.Store.UpdateUserPassword(sess.Username, raw); err != nil {
		sess.State = session.UserMenu
		return "Password change failed: " + err.Error() + "\n" + p.renderUserMenu(sess), nil
	}
	sess.State = session.UserMenu
	return "Password updated.\n" + p.renderUserMenu(sess), nil
}

// handleUserSetPassNew is the sysop-forced reset path: a moderator or
// sysop has put another session's account into this state without a
// prior current-password check.
func (p *Processor) handleUserSetPassNew(sess *session.Session, raw string) (string, error) {
	if err := p.deps.Store.SetUserPassword(sess.Username, raw); err != nil {
		sess.State = session.UserMenu
		return "Password set failed: " + err.Error() + "\n" + p.renderUserMenu(sess), nil
	}
	sess.State = session.UserMenu
	return "Password set.\n" + p.renderUserMenu(sess), nil
}
