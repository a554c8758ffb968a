package mush

import (
	"strings"
	"testing"
)

func TestWhisperRequiresSameRoomAndNotSelf(t *testing.T) {
	p, _ := newTestProcessor(t)
	if _, err := p.Process("alice", "LOOK"); err != nil {
		t.Fatalf("bootstrap alice: %v", err)
	}
	if _, err := p.Process("bob", "LOOK"); err != nil {
		t.Fatalf("bootstrap bob: %v", err)
	}

	resp, err := p.Process("alice", "WHISPER alice hi")
	if err != nil {
		t.Fatalf("whisper self: %v", err)
	}
	if !strings.Contains(resp, "whisper to yourself") {
		t.Fatalf("expected self-whisper rejection, got %q", resp)
	}

	resp, err = p.Process("alice", "WHISPER bob hey there")
	if err != nil {
		t.Fatalf("whisper: %v", err)
	}
	if !strings.Contains(resp, "hey there") {
		t.Fatalf("expected the whisper text relayed, got %q", resp)
	}

	if _, err := p.Process("bob", "NORTH"); err != nil {
		t.Fatalf("move bob away: %v", err)
	}
	resp, err = p.Process("alice", "WHISPER bob are you there")
	if err != nil {
		t.Fatalf("whisper after move: %v", err)
	}
	if !strings.Contains(resp, "aren't here") {
		t.Fatalf("expected whisper to fail once bob left the room, got %q", resp)
	}
}

func TestOOCAndTime(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("erin", "OOC brb refilling coffee")
	if err != nil {
		t.Fatalf("ooc: %v", err)
	}
	if !strings.Contains(resp, "[OOC]") || !strings.Contains(resp, "brb refilling coffee") {
		t.Fatalf("expected an OOC-tagged message, got %q", resp)
	}

	resp, err = p.Process("erin", "TIME")
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	if !strings.Contains(resp, "world clock") {
		t.Fatalf("expected a world clock reading, got %q", resp)
	}
}
