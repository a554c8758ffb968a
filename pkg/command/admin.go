package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/session"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

// tryAdminCommand handles the sysop/moderator verbs available from the
// main menu (LEVEL, USERS, DETAILS, BROADCAST, STATS, LOCK, UNLOCK).
// Verb names match case-insensitively; arguments keep their case. The
// bool return
// reports whether cmd matched an admin verb at all — including ones
// rejected for insufficient privilege — so the caller knows not to fall
// through to ordinary main-menu dispatch.
func (p *Processor) tryAdminCommand(sess *session.Session, cmd string) (string, bool, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", false, nil
	}

	switch strings.ToUpper(fields[0]) {
	case "LEVEL":
		return p.adminSetLevel(sess, fields)
	case "USERS":
		return p.adminListUsers(sess, fields)
	case "DETAILS":
		return p.adminUserDetails(sess, fields)
	case "BROADCAST":
		return p.adminBroadcast(sess, cmd)
	case "STATS":
		return p.adminStats(sess)
	case "LOCK":
		return p.adminLockTopic(sess, fields, true)
	case "UNLOCK":
		return p.adminLockTopic(sess, fields, false)
	default:
		return "", false, nil
	}
}

func (p *Processor) requireModerator(sess *session.Session) (string, bool) {
	if sess.UserLevel < bbs.LevelModerator {
		return "Permission denied.\n", false
	}
	return "", true
}

func (p *Processor) adminSetLevel(sess *session.Session, fields []string) (string, bool, error) {
	if sess.UserLevel < bbs.LevelSysop {
		return "Permission denied.\n", true, nil
	}
	if len(fields) != 3 {
		return "Usage: LEVEL <username> <level>\n", true, nil
	}
	username, err := validate.ValidateUserName(fields[1])
	if err != nil {
		return "Invalid username.\n", true, nil
	}
	level, err := strconv.Atoi(fields[2])
	if err != nil || level < 0 || level > bbs.LevelSysop {
		return "Invalid level.\n", true, nil
	}
	if _, err := p.deps.Store.UpdateUserLevel(username, level, sess.DisplayName()); err != nil {
		return "Level change failed: " + err.Error() + "\n", true, nil
	}
	return fmt.Sprintf("%s is now level %d (%s).\n", username, level, bbs.RoleName(level)), true, nil
}

// adminListUsers renders the USERS roster, optionally narrowed by a
// doublestar glob pattern against the username (USERS sysop* matches
// every account starting with "sysop").
func (p *Processor) adminListUsers(sess *session.Session, fields []string) (string, bool, error) {
	if msg, ok := p.requireModerator(sess); !ok {
		return msg, true, nil
	}
	users, err := p.deps.Store.ListAllUsers()
	if err != nil {
		return "", true, err
	}
	pattern := ""
	if len(fields) > 1 {
		pattern = fields[1]
	}
	var b strings.Builder
	b.WriteString("Users:\n")
	matched := 0
	for _, u := range users {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, u.Username)
			if err != nil {
				return "Invalid pattern.\n", true, nil
			}
			if !ok {
				continue
			}
		}
		fmt.Fprintf(&b, "%s (lvl%d)\n", u.Username, u.UserLevel)
		matched++
	}
	if matched == 0 && pattern != "" {
		return fmt.Sprintf("No users match %q.\n", pattern), true, nil
	}
	return b.String(), true, nil
}

func (p *Processor) adminUserDetails(sess *session.Session, fields []string) (string, bool, error) {
	if msg, ok := p.requireModerator(sess); !ok {
		return msg, true, nil
	}
	if len(fields) != 2 {
		return "Usage: DETAILS <username>\n", true, nil
	}
	username, err := validate.ValidateUserName(fields[1])
	if err != nil {
		return "Invalid username.\n", true, nil
	}
	details, err := p.deps.Store.GetUserDetails(username)
	if err != nil {
		return "", true, err
	}
	if details == nil {
		return "User not found.\n", true, nil
	}
	return fmt.Sprintf(
		"User: %s\nLevel: %d (%s)\nPosts: %d\nFirst login: %s\nLast login: %s\n",
		details.User.Username, details.User.UserLevel, bbs.RoleName(details.User.UserLevel),
		details.PostCount,
		details.User.FirstLogin.Format("01/02 15:04"),
		details.User.LastLogin.Format("01/02 15:04"),
	), true, nil
}

func (p *Processor) adminBroadcast(sess *session.Session, raw string) (string, bool, error) {
	if msg, ok := p.requireModerator(sess); !ok {
		return msg, true, nil
	}
	const prefix = "BROADCAST "
	if !strings.HasPrefix(strings.ToUpper(raw), prefix) {
		return "Usage: BROADCAST <message>\n", true, nil
	}
	message, err := validate.SanitizeMessageContent(raw[len(prefix):], 5000)
	if err != nil {
		return "Broadcast message invalid.\n", true, nil
	}
	if strings.TrimSpace(message) == "" {
		return "Broadcast message cannot be empty.\n", true, nil
	}
	_ = p.deps.Store.LogAdminAction("BROADCAST", "", sess.DisplayName(), message)
	if p.deps.Metrics != nil {
		p.deps.Metrics.RecordBroadcastConfirmed()
	}
	return "Broadcast queued for delivery.\n", true, nil
}

func (p *Processor) adminStats(sess *session.Session) (string, bool, error) {
	if msg, ok := p.requireModerator(sess); !ok {
		return msg, true, nil
	}
	stats, err := p.deps.Store.GetStatistics(p.deps.Uptime)
	if err != nil {
		return "", true, err
	}
	return fmt.Sprintf(
		"Messages: %d\nUsers: %d\nModerators: %d\nNew this week: %d\n",
		stats.TotalMessages, stats.TotalUsers, stats.ModeratorCount, stats.RecentRegistrations,
	), true, nil
}

func (p *Processor) adminLockTopic(sess *session.Session, fields []string, lock bool) (string, bool, error) {
	if msg, ok := p.requireModerator(sess); !ok {
		return msg, true, nil
	}
	if len(fields) != 2 {
		return "Usage: LOCK|UNLOCK <topic>\n", true, nil
	}
	var err error
	if lock {
		err = p.deps.Store.LockTopic(fields[1], sess.DisplayName())
	} else {
		err = p.deps.Store.UnlockTopic(fields[1], sess.DisplayName())
	}
	if err != nil {
		return "Failed: " + err.Error() + "\n", true, nil
	}
	verb := "locked"
	if !lock {
		verb = "unlocked"
	}
	return fmt.Sprintf("Topic %s %s.\n", fields[1], verb), true, nil
}
