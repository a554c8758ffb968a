// Package session implements the per-connection state machine for a
// mesh bulletin board client: authentication state, current menu
// location, pagination/compose scratch state, and the prompt text
// rendered in front of every reply.
//
// Sessions live entirely in memory — a node's session survives only as
// long as the owning process does, matching the source system's design
// (a session is reconstructed from the bound username on reconnect, not
// replayed from a transcript). Manager (manager.go) owns the
// collection and evicts sessions past their inactivity timeout.
package session

import (
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbslog"
)

// Session tracks one connected node's place in the BBS.
type Session struct {
	ID         string
	NodeID     string
	ShortLabel string
	LongLabel  string

	Username  string
	UserLevel int

	CurrentTopic    string
	CurrentThreadID string
	CurrentGameSlug string

	// HelpSeen tracks whether the abbreviated HELP summary has already
	// been shown this session, so the shortcuts line is appended once.
	HelpSeen bool

	ListPage     int
	PostIndex    int
	SliceIndex   int
	FilterText   string
	PendingInput string

	// ComposeBuffer accumulates a multi-line message body across
	// successive Process calls in ComposeNewBody, one line per call,
	// until a line containing only "." finalizes the post.
	ComposeBuffer string

	// UnreadSince is the previous last-login timestamp captured at the
	// moment of this login, used to compute unread-since-last-visit
	// indicators.
	UnreadSince time.Time

	LoginTime    time.Time
	LastActivity time.Time
	State        State
}

// New creates a session in the Connected state for a freshly-seen node.
func New(id, nodeID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		NodeID:       nodeID,
		ListPage:     1,
		PostIndex:    1,
		SliceIndex:   1,
		LoginTime:    now,
		LastActivity: now,
		State:        Connected,
	}
}

// UpdateActivity refreshes the last-activity timestamp; called before
// processing every inbound command.
func (s *Session) UpdateActivity() {
	s.LastActivity = time.Now().UTC()
}

// Login authenticates the session as username at the given access
// level and moves it to the main menu. Persisting the login event
// itself (updating the account's last_login) is the caller's
// responsibility — Session has no storage handle.
func (s *Session) Login(username string, level int) {
	s.Username = username
	s.UserLevel = level
	s.State = MainMenu
	s.CurrentGameSlug = ""
}

// Logout clears authentication state and moves the session to
// Disconnected. logger may be nil; when present, a logout line is
// emitted for any in-progress game so engagement metrics in pkg/metrics
// stay consistent with what was logged at entry.
func (s *Session) Logout(logger *bbslog.Logger) {
	if logger != nil && s.CurrentGameSlug != "" {
		logger.Info("session logout ending game",
			bbslog.F("slug", s.CurrentGameSlug),
			bbslog.F("session", s.ID),
			bbslog.Text("user", s.DisplayName()),
			bbslog.Text("node", s.NodeID),
		)
	}
	s.Username = ""
	s.UserLevel = 0
	s.CurrentTopic = ""
	s.CurrentGameSlug = ""
	s.State = Disconnected
}

// IsLoggedIn reports whether the session is bound to an account.
func (s *Session) IsLoggedIn() bool {
	return s.Username != ""
}

// DisplayName returns the bound username, or "Guest" pre-login.
func (s *Session) DisplayName() string {
	if s.Username == "" {
		return "Guest"
	}
	return s.Username
}

// HasAccess reports whether the session's level meets requiredLevel.
func (s *Session) HasAccess(requiredLevel int) bool {
	return s.UserLevel >= requiredLevel
}

// SessionDuration returns how long the session has been active.
func (s *Session) SessionDuration() time.Duration {
	return s.LastActivity.Sub(s.LoginTime)
}

// IsInactive reports whether the session has been idle longer than
// timeout.
func (s *Session) IsInactive(timeout time.Duration) bool {
	return time.Since(s.LastActivity) > timeout
}

// UpdateLabels records short/long display names reported by the
// transport layer (e.g. a Meshtastic node's advertised names), leaving
// any already-set label alone when the new value is empty.
func (s *Session) UpdateLabels(short, long string) {
	if short != "" {
		s.ShortLabel = short
	}
	if long != "" {
		s.LongLabel = long
	}
}
