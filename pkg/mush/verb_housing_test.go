package mush

import (
	"strings"
	"testing"
)

func rentCottage(t *testing.T, p *Processor, username string) {
	t.Helper()
	if _, err := p.Process(username, "LOOK"); err != nil {
		t.Fatalf("bootstrap %s: %v", username, err)
	}
	if _, err := p.Process(username, "NORTH"); err != nil {
		t.Fatalf("move to square: %v", err)
	}
	if _, err := p.Process(username, "WEST"); err != nil {
		t.Fatalf("move to tavern: %v", err)
	}
	resp, err := p.Process(username, "RENT cottage")
	if err != nil {
		t.Fatalf("rent: %v", err)
	}
	if !strings.Contains(resp, "You now own") {
		t.Fatalf("expected a successful rental, got %q", resp)
	}
}

func TestHousingInviteDescribeLockUninvite(t *testing.T) {
	p, _ := newTestProcessor(t)
	rentCottage(t, p, "ivan")
	if _, err := p.Process("alice", "LOOK"); err != nil {
		t.Fatalf("bootstrap alice: %v", err)
	}

	if _, err := p.Process("ivan", "HOME"); err != nil {
		t.Fatalf("home: %v", err)
	}

	resp, err := p.Process("ivan", "INVITE alice")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if !strings.Contains(resp, "now invited") {
		t.Fatalf("expected invite confirmation, got %q", resp)
	}

	resp, err = p.Process("ivan", "DESCRIBE A cottage rearranged with bookshelves and a new rug.")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(resp, "updated") {
		t.Fatalf("expected a description-updated confirmation, got %q", resp)
	}

	resp, err = p.Process("ivan", "LOCK")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !strings.Contains(resp, "Locked") {
		t.Fatalf("expected the home to lock, got %q", resp)
	}

	resp, err = p.Process("ivan", "UNLOCK")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !strings.Contains(resp, "Unlocked") {
		t.Fatalf("expected the home to unlock, got %q", resp)
	}

	resp, err = p.Process("ivan", "UNINVITE alice")
	if err != nil {
		t.Fatalf("uninvite: %v", err)
	}
	if !strings.Contains(resp, "no longer invited") {
		t.Fatalf("expected uninvite confirmation, got %q", resp)
	}
}

func TestInviteRequiresStandingInsideAHousingInstance(t *testing.T) {
	p, _ := newTestProcessor(t)
	rentCottage(t, p, "ivan")
	if _, err := p.Process("alice", "LOOK"); err != nil {
		t.Fatalf("bootstrap alice: %v", err)
	}
	// ivan is still in the tavern, not inside his new cottage instance.
	resp, err := p.Process("ivan", "INVITE alice")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if !strings.Contains(resp, "aren't inside a housing instance") {
		t.Fatalf("expected a rejection outside the instance, got %q", resp)
	}
}

func TestGetDropRecordsOwnershipHistory(t *testing.T) {
	p, store := newTestProcessor(t)
	if _, err := p.Process("alice", "NORTH"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := p.Process("alice", "SOUTH"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := p.Process("alice", "GET healing potion"); err != nil {
		t.Fatalf("get: %v", err)
	}

	resp, err := p.Process("alice", "HISTORY healing potion")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(resp, "(world) -> alice") {
		t.Fatalf("expected a world-to-alice transfer recorded, got %q", resp)
	}

	if _, err := p.Process("alice", "DROP healing potion"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	obj, err := store.GetObject("healing_potion")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	if len(obj.OwnershipHistory) != 2 {
		t.Fatalf("expected two recorded transfers after GET then DROP, got %d", len(obj.OwnershipHistory))
	}
}
