package session

import (
	"testing"
	"time"
)

func TestNewSessionStartsConnected(t *testing.T) {
	s := New("sess-1", "!a1b2c3")
	if s.State != Connected {
		t.Errorf("State = %v, want Connected", s.State)
	}
	if s.IsLoggedIn() {
		t.Error("new session must not be logged in")
	}
	if s.DisplayName() != "Guest" {
		t.Errorf("DisplayName() = %q, want Guest", s.DisplayName())
	}
}

func TestLoginAndLogout(t *testing.T) {
	s := New("sess-1", "!a1b2c3")
	s.Login("martin", 5)
	if !s.IsLoggedIn() || s.State != MainMenu {
		t.Fatalf("expected logged-in MainMenu state, got %+v", s)
	}
	if !s.HasAccess(5) || s.HasAccess(10) {
		t.Error("HasAccess did not reflect the granted level")
	}

	s.Logout(nil)
	if s.IsLoggedIn() || s.State != Disconnected {
		t.Fatalf("expected logged-out Disconnected state, got %+v", s)
	}
}

func TestBuildPromptVariesByState(t *testing.T) {
	s := New("sess-1", "!a1b2c3")
	if got := s.BuildPrompt(); got != "unauth>" {
		t.Errorf("unauthenticated prompt = %q, want unauth>", got)
	}

	s.Login("martin", 1)
	if got := s.BuildPrompt(); got != "martin (lvl1)>" {
		t.Errorf("main menu prompt = %q", got)
	}

	s.State = Threads
	s.CurrentTopic = "general"
	if got := s.BuildPrompt(); got != "martin@general>" {
		t.Errorf("threads-with-topic prompt = %q", got)
	}

	s.State = PostingMessage
	if got := s.BuildPrompt(); got != "post@general>" {
		t.Errorf("posting prompt = %q", got)
	}

	s.State = TinyMush
	if got := s.BuildPrompt(); got != "" {
		t.Errorf("game-state prompt = %q, want empty", got)
	}
}

func TestIsInactive(t *testing.T) {
	s := New("sess-1", "!a1b2c3")
	s.LastActivity = time.Now().UTC().Add(-time.Hour)
	if !s.IsInactive(10 * time.Minute) {
		t.Error("expected session to be inactive")
	}
	s.UpdateActivity()
	if s.IsInactive(10 * time.Minute) {
		t.Error("expected session to be active right after UpdateActivity")
	}
}

func TestInlineShortcutSafe(t *testing.T) {
	if !InlineShortcutSafe(MainMenu) {
		t.Error("MainMenu should accept inline shortcuts")
	}
	if InlineShortcutSafe(ComposeNewBody) {
		t.Error("ComposeNewBody must not accept inline shortcuts (free text expected)")
	}
	if InlineShortcutSafe(TinyMush) {
		t.Error("TinyMush defines its own verb grammar, not BBS shortcuts")
	}
}
