// Package transport defines the collaborator contracts the core BBS
// trusts an external radio layer to satisfy — an inbound stream of
// decoded text events and an outbound chunked sender — plus an
// in-process router and a handful of non-radio transports (channel,
// stdio, an optional websocket operator console) used to exercise the
// whole stack without real mesh hardware.
package transport

import (
	"errors"
	"unicode/utf8"
)

// ErrTransportClosed is returned by Send/Events operations attempted
// on a transport that has already been closed.
var ErrTransportClosed = errors.New("transport: closed")

// MaxFrameBytes is the largest payload a single outbound chunk may
// carry — matched to pkg/frame.MaxPayloadBytes, the same 230-byte
// mesh packet ceiling the rendering layer targets for single
// responses.
const MaxFrameBytes = 230

// InboundEvent is one decoded line of user input arriving from a mesh
// node. Reliable mirrors the radio's own delivery-confirmation flag
// for the packet that carried it; the core does not otherwise
// distinguish reliable from best-effort delivery.
type InboundEvent struct {
	NodeID   string
	Text     string
	Reliable bool
}

// Inbound is the collaborator contract for receiving decoded text
// from the mesh. Framing, retry, and duplicate suppression are the
// radio's problem — by the time an InboundEvent reaches the core,
// Text is a complete decoded line.
type Inbound interface {
	// Events returns a channel of incoming events. The channel is
	// closed when no more input will arrive.
	Events() <-chan InboundEvent
	// Close shuts the inbound source down. Safe to call more than once.
	Close() error
}

// Outbound is the collaborator contract for sending text back to a
// node. Implementations own chunking text into <=230-byte frames on
// UTF-8 boundaries and any scheduling/retry the underlying radio
// needs; the core never blocks on radio I/O waiting for Send to
// return.
type Outbound interface {
	// Send delivers text to nodeID, chunking as needed.
	Send(nodeID, text string) error
	// IsReady reports whether the transport is currently accepting sends.
	IsReady() bool
	// Close shuts the outbound sink down. Safe to call more than once.
	Close() error
}

// ChunkText splits text into frames no larger than maxBytes, breaking
// only on UTF-8 rune boundaries so a frame never ends mid-codepoint.
// maxBytes <= 0 defaults to MaxFrameBytes.
func ChunkText(text string, maxBytes int) []string {
	if maxBytes <= 0 {
		maxBytes = MaxFrameBytes
	}
	if len(text) <= maxBytes {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	remaining := text
	for len(remaining) > maxBytes {
		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(remaining[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxBytes
		}
		chunks = append(chunks, remaining[:cut])
		remaining = remaining[cut:]
	}
	if len(remaining) > 0 {
		chunks = append(chunks, remaining)
	}
	return chunks
}
