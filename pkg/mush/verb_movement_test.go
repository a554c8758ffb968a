package mush

import (
	"strings"
	"testing"
)

func TestWhereReportsCurrentRoom(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("alice", "WHERE")
	if err != nil {
		t.Fatalf("where: %v", err)
	}
	if !strings.Contains(resp, "Landing Gazebo") {
		t.Fatalf("expected the landing room named, got %q", resp)
	}
}

func TestMapListsExitsWithDestinationNames(t *testing.T) {
	p, _ := newTestProcessor(t)
	if _, err := p.Process("alice", "NORTH"); err != nil {
		t.Fatalf("move: %v", err)
	}
	resp, err := p.Process("alice", "MAP")
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if !strings.Contains(resp, "Old Towne Square") {
		t.Fatalf("expected the current room name, got %q", resp)
	}
	if !strings.Contains(resp, "City Hall Lobby") {
		t.Fatalf("expected an exit destination named, got %q", resp)
	}
}
