package bbs

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRegisterAndVerifyUser(t *testing.T) {
	s := newTestStore(t)

	if err := s.RegisterUser("martin", "hunter222", ""); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if err := s.RegisterUser("martin", "hunter222", ""); err == nil {
		t.Error("expected duplicate-username error")
	}

	user, ok, err := s.VerifyPassword("martin", "hunter222")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok || user == nil {
		t.Fatal("expected password to verify")
	}
	if user.UserLevel != LevelUser {
		t.Errorf("default level = %d, want %d", user.UserLevel, LevelUser)
	}

	if _, ok, err := s.VerifyPassword("martin", "wrongpass"); err != nil || ok {
		t.Error("expected wrong password to fail verification")
	}
}

func TestGetOrCreateUserForNodeIsPasswordless(t *testing.T) {
	s := newTestStore(t)

	user, err := s.GetOrCreateUserForNode("n0deuser", "!a1b2c3")
	if err != nil {
		t.Fatalf("GetOrCreateUserForNode: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("node-created account should start passwordless")
	}
	_, matched, err := s.VerifyPassword("n0deuser", "")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if matched {
		t.Error("passwordless account must never verify a match")
	}

	again, err := s.GetOrCreateUserForNode("n0deuser", "!different")
	if err != nil {
		t.Fatalf("second GetOrCreateUserForNode: %v", err)
	}
	if again.NodeID != "!a1b2c3" {
		t.Error("existing node binding must not be overwritten")
	}
}

func TestUpdateUserLevelCannotDemoteSysop(t *testing.T) {
	s := newTestStore(t)
	if err := s.RegisterUser("quinn", "sysoppass1", ""); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, err := s.UpdateUserLevel("quinn", LevelSysop, "root"); err != nil {
		t.Fatalf("promote to sysop: %v", err)
	}
	if _, err := s.UpdateUserLevel("quinn", LevelUser, "root"); err == nil {
		t.Error("expected sysop demotion to be rejected")
	}

	page, _, err := s.GetAdminAuditPage(1)
	if err != nil {
		t.Fatalf("GetAdminAuditPage: %v", err)
	}
	if len(page) == 0 || page[0].Action != "PROMOTE" {
		t.Errorf("expected a PROMOTE audit entry, got %+v", page)
	}
}

func TestStoreMessageDoubleGate(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.StoreMessage("general", "martin", "", "hello", LevelUser); err == nil {
		t.Error("posting to a non-existent topic must fail")
	}

	if _, err := s.CreateTopic("general", "General discussion", LevelUser, LevelModerator, "root"); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if _, err := s.StoreMessage("general", "martin", "", "hello", LevelUser); err == nil {
		t.Error("posting below PostLevel must fail")
	}

	msg, err := s.StoreMessage("general", "root", "Welcome", "hello everyone", LevelSysop)
	if err != nil {
		t.Fatalf("StoreMessage: %v", err)
	}
	if msg.ID == "" {
		t.Error("expected a generated message id")
	}

	if err := s.LockTopic("general", "root"); err != nil {
		t.Fatalf("LockTopic: %v", err)
	}
	if _, err := s.StoreMessage("general", "root", "", "locked out", LevelSysop); err == nil {
		t.Error("posting to a locked topic must fail")
	}
}

func TestGetMessagesOrdering(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTopic("news", "News", LevelUser, LevelUser, "root"); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	base := time.Now().UTC()
	old, _ := s.StoreMessage("news", "a", "", "older", LevelUser)
	old.Timestamp = base.Add(-time.Hour)
	if err := s.writeMessage(old); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}

	newer, _ := s.StoreMessage("news", "b", "", "newer", LevelUser)
	newer.Timestamp = base
	if err := s.writeMessage(newer); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}

	pinned, _ := s.StoreMessage("news", "c", "", "pinned but oldest", LevelUser)
	pinned.Timestamp = base.Add(-2 * time.Hour)
	pinned.Pinned = true
	if err := s.writeMessage(pinned); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}

	msgs, err := s.GetMessages("news", 10)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if !msgs[0].Pinned {
		t.Errorf("pinned message must sort first, got %+v", msgs[0])
	}
	if msgs[1].ID != newer.ID {
		t.Errorf("newest unpinned message must sort next, got %+v", msgs[1])
	}
}

func TestAppendReplyAndDeleteMessage(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTopic("chat", "Chat", LevelUser, LevelUser, "root"); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	msg, err := s.StoreMessage("chat", "a", "", "first post", LevelUser)
	if err != nil {
		t.Fatalf("StoreMessage: %v", err)
	}
	updated, err := s.AppendReply("chat", msg.ID, "b", "nice post")
	if err != nil {
		t.Fatalf("AppendReply: %v", err)
	}
	if len(updated.Replies) != 1 || updated.Replies[0].Content != "nice post" {
		t.Fatalf("unexpected replies: %+v", updated.Replies)
	}

	if err := s.DeleteMessage("chat", msg.ID, "root"); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	msgs, err := s.GetMessages("chat", 10)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected message to be gone after deletion, got %d", len(msgs))
	}

	page, _, err := s.GetDeletionAuditPage(1)
	if err != nil {
		t.Fatalf("GetDeletionAuditPage: %v", err)
	}
	if len(page) != 1 || page[0].ID != msg.ID {
		t.Errorf("expected a deletion-audit entry for %s, got %+v", msg.ID, page)
	}
}

func TestStatistics(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().UTC()
	if err := s.RegisterUser("martin", "hunter222", ""); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	stats, err := s.GetStatistics(start)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("TotalUsers = %d, want 1", stats.TotalUsers)
	}
	if stats.RecentRegistrations != 1 {
		t.Errorf("RecentRegistrations = %d, want 1", stats.RecentRegistrations)
	}
}
