package mush

import (
	"strings"
	"testing"
)

func TestBoardPostAndRead(t *testing.T) {
	p, _ := newTestProcessor(t)
	resp, err := p.Process("alice", "BOARD")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if !strings.Contains(resp, "board is empty") {
		t.Fatalf("expected an empty board, got %q", resp)
	}

	resp, err = p.Process("alice", "POST LostCat Have you seen a gray tabby near the gazebo?")
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if !strings.Contains(resp, "Posted") {
		t.Fatalf("expected post confirmation, got %q", resp)
	}

	resp, err = p.Process("bob", "BOARD")
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if !strings.Contains(resp, "LostCat") || !strings.Contains(resp, "alice") {
		t.Fatalf("expected the new post listed with its author, got %q", resp)
	}

	fields := strings.Fields(resp)
	var id string
	for _, f := range fields {
		if strings.HasSuffix(f, ":") && strings.Contains(f, "-") {
			id = strings.TrimSuffix(f, ":")
			break
		}
	}
	if id == "" {
		t.Fatalf("couldn't find a post id in %q", resp)
	}

	resp, err = p.Process("bob", "READ "+id)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(resp, "Have you seen a gray tabby") {
		t.Fatalf("expected the post body, got %q", resp)
	}
}

func TestMailSendAndRead(t *testing.T) {
	p, _ := newTestProcessor(t)
	if _, err := p.Process("alice", "LOOK"); err != nil {
		t.Fatalf("bootstrap alice: %v", err)
	}
	if _, err := p.Process("bob", "LOOK"); err != nil {
		t.Fatalf("bootstrap bob: %v", err)
	}

	resp, err := p.Process("alice", "SEND bob hello just checking in")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(resp, "Mail sent to bob") {
		t.Fatalf("expected send confirmation, got %q", resp)
	}

	resp, err = p.Process("bob", "MAIL")
	if err != nil {
		t.Fatalf("mail: %v", err)
	}
	if !strings.Contains(resp, "hello") || !strings.Contains(resp, "alice") {
		t.Fatalf("expected the new mail listed as unread from alice, got %q", resp)
	}

	fields := strings.Fields(resp)
	var id string
	for _, f := range fields {
		if strings.HasSuffix(f, ":") && strings.Contains(f, "-") {
			id = strings.TrimSuffix(strings.TrimPrefix(f, "*"), ":")
			break
		}
	}
	if id == "" {
		t.Fatalf("couldn't find a mail id in %q", resp)
	}

	resp, err = p.Process("bob", "RMAIL "+id)
	if err != nil {
		t.Fatalf("rmail: %v", err)
	}
	if !strings.Contains(resp, "just checking in") {
		t.Fatalf("expected mail body, got %q", resp)
	}

	if _, err := p.Process("bob", "DMAIL "+id); err != nil {
		t.Fatalf("dmail: %v", err)
	}
	resp, err = p.Process("bob", "MAIL")
	if err != nil {
		t.Fatalf("mail after delete: %v", err)
	}
	if !strings.Contains(resp, "inbox is empty") {
		t.Fatalf("expected an empty inbox after DMAIL, got %q", resp)
	}
}

func TestMailCannotSendToSelf(t *testing.T) {
	p, _ := newTestProcessor(t)
	if _, err := p.Process("carol", "LOOK"); err != nil {
		t.Fatalf("bootstrap carol: %v", err)
	}
	resp, err := p.Process("carol", "SEND carol note to self")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(resp, "can't mail yourself") {
		t.Fatalf("expected self-mail rejection, got %q", resp)
	}
}
