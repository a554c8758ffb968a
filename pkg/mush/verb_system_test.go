package mush

import (
	"strings"
	"testing"
)

func TestTutorialStartSkipRestart(t *testing.T) {
	p, store := newTestProcessor(t)
	resp, err := p.Process("alice", "TUTORIAL")
	if err != nil {
		t.Fatalf("tutorial: %v", err)
	}
	if !strings.Contains(resp, "Tutorial started") {
		t.Fatalf("expected tutorial start, got %q", resp)
	}

	resp, err = p.Process("alice", "TUTORIAL SKIP")
	if err != nil {
		t.Fatalf("tutorial skip: %v", err)
	}
	if !strings.Contains(resp, "skipped") {
		t.Fatalf("expected tutorial skipped, got %q", resp)
	}
	player, err := store.GetPlayer("alice")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if player.TutorialState.Status != "skipped" {
		t.Fatalf("expected skipped status, got %q", player.TutorialState.Status)
	}

	if _, err := p.Process("alice", "TUTORIAL RESTART"); err != nil {
		t.Fatalf("tutorial restart: %v", err)
	}
	player, err = store.GetPlayer("alice")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if player.TutorialState.Status != "in_progress" {
		t.Fatalf("expected in_progress status after restart, got %q", player.TutorialState.Status)
	}
}

func TestSaveAndDebug(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("bob", "SAVE")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(resp, "saved") {
		t.Fatalf("expected save confirmation, got %q", resp)
	}

	resp, err = p.Process("bob", "DEBUG")
	if err != nil {
		t.Fatalf("debug: %v", err)
	}
	if !strings.Contains(resp, "player=bob") {
		t.Fatalf("expected debug to mention the player, got %q", resp)
	}
}

func TestSetConfigAndGetConfigRoundTrip(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("carol", "@SETCONFIG welcome_message Welcome back to the mesh!")
	if err != nil {
		t.Fatalf("setconfig: %v", err)
	}
	if !strings.Contains(resp, "welcome_message set") {
		t.Fatalf("expected confirmation, got %q", resp)
	}

	resp, err = p.Process("carol", "@GETCONFIG welcome_message")
	if err != nil {
		t.Fatalf("getconfig: %v", err)
	}
	if !strings.Contains(resp, "Welcome back to the mesh!") {
		t.Fatalf("expected the updated value, got %q", resp)
	}
}

func TestSetConfigRejectsUnknownField(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("dave", "@SETCONFIG not_a_real_field whatever")
	if err != nil {
		t.Fatalf("setconfig: %v", err)
	}
	if !strings.Contains(resp, "unknown field") {
		t.Fatalf("expected an unknown-field rejection, got %q", resp)
	}
}
