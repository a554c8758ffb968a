package command

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/session"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

func (p *Processor) handleInitialConnection(sess *session.Session, _ string) (string, error) {
	sess.State = session.LoggingIn
	return fmt.Sprintf(
		"[%s]\nNode: %s\nAuth: REGISTER <user> <pass> or LOGIN <user> [pass]\nType HELP for commands\n"+mainMenuText,
		p.deps.Config.BBS.Name, sess.NodeID,
	), nil
}

func (p *Processor) handleLogin(sess *session.Session, cmd string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(cmd))
	switch {
	case strings.HasPrefix(upper, "REGISTER "):
		return p.doRegister(sess, cmd[len("REGISTER "):])
	case strings.HasPrefix(upper, "LOGIN "):
		return p.doLogin(sess, cmd[len("LOGIN "):])
	default:
		return "Please enter: LOGIN <username> [password] or REGISTER <username> <password>\n", nil
	}
}

func (p *Processor) doRegister(sess *session.Session, rest string) (string, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "Usage: REGISTER <username> <password>\n", nil
	}
	username, password := fields[0], fields[1]

	if err := p.deps.Store.RegisterUser(username, password, sess.NodeID); err != nil {
		return fmt.Sprintf("Registration failed: %s\n", err), nil
	}
	sess.Login(username, bbs.LevelUser)
	return fmt.Sprintf("Welcome %s! Account created.\n"+mainMenuText, sess.DisplayName()), nil
}

func (p *Processor) doLogin(sess *session.Session, rest string) (string, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "Usage: LOGIN <username> [password]\n", nil
	}
	rawUsername := fields[0]

	username, err := validate.ValidateUserName(rawUsername)
	if err != nil {
		return fmt.Sprintf(
			"Invalid username: %s\n\nValid usernames must:\n"+
				"- Be 2-30 characters long\n"+
				"- Not start or end with spaces\n"+
				"- Not contain path separators (/, \\)\n"+
				"- Not be reserved system names\n"+
				"- Not contain control characters\n\n"+
				"Please try: LOGIN <valid_username>\n", err), nil
	}

	if len(fields) >= 2 {
		user, ok, verr := p.deps.Store.VerifyPassword(username, fields[1])
		if verr != nil {
			return "", verr
		}
		if !ok || user == nil {
			return "Invalid username or password.\n", nil
		}
		if _, err := p.deps.Store.RecordUserLogin(username); err != nil {
			return "", err
		}
		sess.Login(username, user.UserLevel)
		return fmt.Sprintf("Welcome back %s!\n"+mainMenuText, username), nil
	}

	// Node-bound passwordless continuity: no password supplied, fall
	// back to an existing node binding or create one on first contact.
	user, err := p.deps.Store.GetOrCreateUserForNode(username, sess.NodeID)
	if err != nil {
		return "", err
	}
	sess.Login(username, user.UserLevel)
	return fmt.Sprintf("Welcome %s!\n"+mainMenuText, username), nil
}
