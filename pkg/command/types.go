// Package command implements the BBS-level command dispatcher: the
// per-state input handlers a connected session's text is routed
// through (login/registration, topic and thread navigation, message
// composition, the user menu, and sysop admin verbs). TinyMUSH's
// separate ~100-verb grammar lives in pkg/mush.
package command

import (
	"errors"
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/bbslog"
	"github.com/smartyhall/meshbbs/pkg/bbsconfig"
	"github.com/smartyhall/meshbbs/pkg/metrics"
	"github.com/smartyhall/meshbbs/pkg/session"
)

// ErrUnknownTransition is returned when a session is found in a state
// the processor's dispatch table has no case for — this should never
// happen for a session created through session.New, since every
// session.State value has a handler below; it exists so an unhandled
// future state fails loudly rather than falling through silently.
var ErrUnknownTransition = errors.New("command: no handler for session state")

// Deps bundles the collaborators every handler needs. Processor keeps
// one copy of it, which each handler method reads through p.deps.
type Deps struct {
	Store   *bbs.Store
	Config  *bbsconfig.Config
	Metrics *metrics.Registry
	Logger  *bbslog.Logger
	Uptime  time.Time
}

// Processor dispatches a line of input for a session to the handler
// for its current state.
type Processor struct {
	deps Deps
}

// NewProcessor creates a command processor over the given
// collaborators.
func NewProcessor(deps Deps) *Processor {
	return &Processor{deps: deps}
}

// Process handles one line of input for sess, returning the text to
// send back to the client. It always updates sess.LastActivity first,
// matching the teacher's convention of stamping activity before
// dispatch rather than after.
func (p *Processor) Process(sess *session.Session, raw string) (string, error) {
	sess.UpdateActivity()

	switch sess.State {
	case session.Connected:
		return p.handleInitialConnection(sess, raw)
	case session.LoggingIn:
		return p.handleLogin(sess, raw)
	case session.MainMenu:
		return p.handleMainMenu(sess, raw)
	case session.Topics:
		return p.handleTopics(sess, raw)
	case session.Subtopics:
		return p.handleSubtopics(sess, raw)
	case session.Threads:
		return p.handleThreads(sess, raw)
	case session.ThreadRead:
		return p.handleThreadRead(sess, raw)
	case session.ComposeNewTitle:
		return p.handleComposeNewTitle(sess, raw)
	case session.ComposeNewBody:
		return p.handleComposeNewBody(sess, raw)
	case session.ComposeReply:
		return p.handleComposeReply(sess, raw)
	case session.ConfirmDelete:
		return p.handleConfirmDelete(sess, raw)
	case session.MessageTopics:
		return p.handleLegacyMessageTopics(sess, raw)
	case session.ReadingMessages:
		return p.handleLegacyReadingMessages(sess, raw)
	case session.PostingMessage:
		return p.handleLegacyPostingMessage(sess, raw)
	case session.UserMenu:
		return p.handleUserMenu(sess, raw)
	case session.UserChangePassCurrent:
		return p.handleUserChangePassCurrent(sess, raw)
	case session.UserChangePassNew:
		return p.handleUserChangePassNew(sess, raw)
	case session.UserSetPassNew:
		return p.handleUserSetPassNew(sess, raw)
	case session.TinyHack, session.TinyMush:
		// Owned by pkg/mush / the slot machine loop once a game is
		// entered; reaching here means the caller forgot to route to
		// the game engine instead of the BBS processor.
		return "", errors.New("command: game states are not handled by the BBS processor")
	case session.Disconnected:
		return "Session disconnected.\n", nil
	default:
		return "", ErrUnknownTransition
	}
}

const mainMenuText = "Main Menu:\n[M]essages [U]ser [Q]uit\n"

func welcomeGamesNote(cfg *bbsconfig.Config) string {
	if cfg != nil && cfg.Games.TinyhackEnabled {
		return " [T]inyHack"
	}
	return ""
}
