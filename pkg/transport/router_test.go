package transport

import (
	"strings"
	"testing"
	"time"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/bbsconfig"
	"github.com/smartyhall/meshbbs/pkg/command"
	"github.com/smartyhall/meshbbs/pkg/metrics"
	"github.com/smartyhall/meshbbs/pkg/mush"
	"github.com/smartyhall/meshbbs/pkg/session"
	"github.com/smartyhall/meshbbs/pkg/world"
)

func newTestRouter(t *testing.T) (*Router, *ChannelPair) {
	t.Helper()

	bbsStore, err := bbs.New(t.TempDir())
	if err != nil {
		t.Fatalf("bbs.New: %v", err)
	}
	worldStore := world.New(t.TempDir())
	if err := worldStore.Seed(time.Now().UTC()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	cfg := bbsconfig.Default()
	cmdProc := command.NewProcessor(command.Deps{
		Store:   bbsStore,
		Config:  &cfg,
		Metrics: metrics.NewRegistry(),
		Uptime:  time.Now(),
	})
	mushProc := mush.NewProcessor(mush.Deps{Store: worldStore, Metrics: metrics.NewRegistry()})

	sessions := session.NewManager()
	pair := NewChannelPair(8)
	router := NewRouter(pair.Inbound(), pair.Outbound(), sessions, cmdProc, mushProc, nil)
	return router, pair
}

func TestRouterRunDispatchesToBBSByDefault(t *testing.T) {
	router, pair := newTestRouter(t)
	done := make(chan error, 1)
	go func() { done <- router.Run() }()

	if err := pair.Inject(InboundEvent{NodeID: "!ab12cd34", Text: ""}); err != nil {
		t.Fatalf("Inject: %v", err)
	}

	nodeID, text, ok := pair.Drain()
	if !ok {
		t.Fatal("expected a rendered response")
	}
	if nodeID != "!ab12cd34" {
		t.Errorf("nodeID = %q", nodeID)
	}
	if text == "" {
		t.Error("expected a non-empty welcome/menu response from the BBS processor")
	}

	pair.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Router.Run to return after Close")
	}

	select {
	case <-router.Done():
	default:
		t.Error("expected Done() to be closed once Run returns")
	}
}

func TestRouterDispatchRoutesToMushWhenSessionInTinyMush(t *testing.T) {
	router, pair := newTestRouter(t)

	sess := router.sessions.GetOrCreate("!deadbeef", "!deadbeef")
	sess.State = session.TinyMush
	sess.Username = "wanderer"

	resp, err := router.dispatch(InboundEvent{NodeID: "!deadbeef", Text: "LOOK"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp == "" {
		t.Error("expected a non-empty room description from the TinyMUSH processor")
	}

	_ = pair // pair not used on this path; dispatch is exercised directly
}

func TestRouterRunHandlesMultipleEventsInOrder(t *testing.T) {
	router, pair := newTestRouter(t)
	done := make(chan error, 1)
	go func() { done <- router.Run() }()

	sess := router.sessions.GetOrCreate("!silent", "!silent")
	sess.State = session.TinyMush
	sess.Username = "ghost"

	if err := pair.Inject(InboundEvent{NodeID: "!silent", Text: "INVALIDVERBXYZ"}); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if err := pair.Inject(InboundEvent{NodeID: "!silent", Text: "LOOK"}); err != nil {
		t.Fatalf("Inject: %v", err)
	}

	_, first, ok := pair.Drain()
	if !ok {
		t.Fatal("expected a rejection response for the unknown verb")
	}
	if !strings.Contains(first, "Unknown verb") {
		t.Errorf("first response = %q, want an unknown-verb rejection", first)
	}

	nodeID, second, ok := pair.Drain()
	if !ok {
		t.Fatal("expected a LOOK response")
	}
	if nodeID != "!silent" || second == "" {
		t.Errorf("unexpected second response: %q %q", nodeID, second)
	}

	pair.Close()
	<-done
}
