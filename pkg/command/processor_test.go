package command

import (
	"strings"
	"testing"
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/bbsconfig"
	"github.com/smartyhall/meshbbs/pkg/metrics"
	"github.com/smartyhall/meshbbs/pkg/session"
)

func newTestProcessor(t *testing.T) (*Processor, *bbs.Store) {
	t.Helper()
	store, err := bbs.New(t.TempDir())
	if err != nil {
		t.Fatalf("bbs.New: %v", err)
	}
	cfg := bbsconfig.Default()
	p := NewProcessor(Deps{
		Store:   store,
		Config:  &cfg,
		Metrics: metrics.NewRegistry(),
		Uptime:  time.Now().UTC(),
	})
	return p, store
}

func TestConnectThenLoginFlow(t *testing.T) {
	p, store := newTestProcessor(t)
	sess := session.New("sess-1", "!a1b2c3")

	resp, err := p.Process(sess, "")
	if err != nil {
		t.Fatalf("initial connection: %v", err)
	}
	if sess.State != session.LoggingIn {
		t.Fatalf("expected LoggingIn state, got %v", sess.State)
	}
	if !strings.Contains(resp, "Auth:") {
		t.Errorf("expected auth instructions, got %q", resp)
	}

	resp, err = p.Process(sess, "REGISTER martin hunter222")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.State != session.MainMenu || !sess.IsLoggedIn() {
		t.Fatalf("expected logged-in MainMenu, got state=%v resp=%q", sess.State, resp)
	}
	if _, err := store.GetUser("martin"); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
}

func TestPostAndReadThread(t *testing.T) {
	p, store := newTestProcessor(t)
	if _, err := store.CreateTopic("general", "General", bbs.LevelUser, bbs.LevelUser, "root"); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	sess := session.New("sess-1", "!a1b2c3")
	sess.Login("martin", bbs.LevelUser)
	sess.State = session.Topics
	sess.ListPage = 1

	resp, err := p.Process(sess, "1")
	if err != nil {
		t.Fatalf("pick topic: %v", err)
	}
	if sess.State != session.Threads {
		t.Fatalf("expected Threads state, got %v resp=%q", sess.State, resp)
	}

	if _, err := p.Process(sess, "N"); err != nil {
		t.Fatalf("new thread: %v", err)
	}
	if sess.State != session.ComposeNewTitle {
		t.Fatalf("expected ComposeNewTitle, got %v", sess.State)
	}

	if _, err := p.Process(sess, "Hello world"); err != nil {
		t.Fatalf("title: %v", err)
	}
	if sess.State != session.ComposeNewBody {
		t.Fatalf("expected ComposeNewBody, got %v", sess.State)
	}

	if _, err := p.Process(sess, "line one"); err != nil {
		t.Fatalf("body line: %v", err)
	}
	resp, err = p.Process(sess, ".")
	if err != nil {
		t.Fatalf("finalize post: %v", err)
	}
	if sess.State != session.Threads {
		t.Fatalf("expected back to Threads after posting, got %v resp=%q", sess.State, resp)
	}

	msgs, err := store.GetMessages("general", 10)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "line one" {
		t.Fatalf("unexpected stored messages: %+v", msgs)
	}
}

func TestAdminLevelRequiresSysop(t *testing.T) {
	p, store := newTestProcessor(t)
	if err := store.RegisterUser("alice", "password1", ""); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	sess := session.New("sess-1", "!a1b2c3")
	sess.Login("bob", bbs.LevelUser)
	sess.State = session.MainMenu

	resp, err := p.Process(sess, "LEVEL alice 5")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(resp, "Permission denied") {
		t.Errorf("expected permission denied, got %q", resp)
	}

	sess.UserLevel = bbs.LevelSysop
	resp, err = p.Process(sess, "LEVEL alice 5")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(resp, "level 5") {
		t.Errorf("expected level confirmation, got %q", resp)
	}
}
