package transport

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/bbslog"
	"github.com/smartyhall/meshbbs/pkg/command"
	"github.com/smartyhall/meshbbs/pkg/mush"
	"github.com/smartyhall/meshbbs/pkg/session"
)

// Router connects an Inbound event source to the BBS and TinyMUSH
// processors, and the rendered response back out through an Outbound
// sender. It runs one goroutine (the input pump); processing and
// sending happen synchronously per event, since neither the command
// processor nor the world store is safe for the kind of unordered
// concurrent access a second pump goroutine per node would invite.
type Router struct {
	inbound  Inbound
	outbound Outbound
	sessions *session.Manager
	bbs      *command.Processor
	mush     *mush.Processor
	logger   *bbslog.Logger

	doneCh chan struct{}
}

// NewRouter wires an Inbound/Outbound pair to the BBS and TinyMUSH
// processors, keyed by a shared session manager.
func NewRouter(inbound Inbound, outbound Outbound, sessions *session.Manager, bbs *command.Processor, mushProc *mush.Processor, logger *bbslog.Logger) *Router {
	return &Router{
		inbound:  inbound,
		outbound: outbound,
		sessions: sessions,
		bbs:      bbs,
		mush:     mushProc,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}
}

// Run pumps events from the inbound source until it closes, dispatching
// each to the matching session's processor and sending the rendered
// response back out. It blocks until the inbound channel closes, then
// closes the outbound sender and returns.
func (r *Router) Run() error {
	defer close(r.doneCh)
	defer r.outbound.Close()

	for evt := range r.inbound.Events() {
		resp, err := r.dispatch(evt)
		if err != nil {
			if r.logger != nil {
				r.logger.Error("transport: dispatch failed", bbslog.Text("node_id", evt.NodeID), bbslog.F("error", err))
			}
			continue
		}
		if resp == "" {
			continue
		}
		if err := r.outbound.Send(evt.NodeID, resp); err != nil {
			if err == ErrTransportClosed {
				return nil
			}
			if r.logger != nil {
				r.logger.Error("transport: send failed", bbslog.Text("node_id", evt.NodeID), bbslog.F("error", err))
			}
		}
	}
	return nil
}

// Done returns a channel closed once Run has returned, for callers
// that need to wait on router shutdown alongside other goroutines.
func (r *Router) Done() <-chan struct{} { return r.doneCh }

// dispatch resolves evt.NodeID's session and routes the line to
// whichever engine currently owns it: TinyMUSH while the session sits
// in session.TinyMush, the BBS command processor otherwise. A TinyMUSH
// QUIT moves the session back to session.MainMenu. TinyHack
// is a third engine the command processor already refuses to step
// into itself — wiring a TinyHack processor here is future work, not
// yet part of this router (see DESIGN.md).
func (r *Router) dispatch(evt InboundEvent) (string, error) {
	sess := r.sessions.GetOrCreate(evt.NodeID, evt.NodeID)
	sess.UpdateActivity()

	if sess.State == session.TinyMush {
		resp, err := r.mush.Process(sess.Username, evt.Text)
		if err == nil {
			if fields := strings.Fields(evt.Text); len(fields) > 0 && strings.EqualFold(fields[0], "QUIT") {
				sess.State = session.MainMenu
			}
		}
		return resp, err
	}

	resp, err := r.bbs.Process(sess, evt.Text)
	if err != nil {
		return "", fmt.Errorf("transport: bbs process: %w", err)
	}
	return resp, nil
}
