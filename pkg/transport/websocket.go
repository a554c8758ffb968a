package transport

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"nhooyr.io/websocket"
)

// consoleFrame is the wire shape for a single ConsoleTransport message
// in either direction — an operator console is not a real mesh node,
// so it gets to speak structured JSON instead of raw radio text.
type consoleFrame struct {
	NodeID string `json:"node_id"`
	Text   string `json:"text"`
}

// ConsoleTransport is an optional Inbound+Outbound pair for an
// operator console: a human at a browser tab driving the world over
// a WebSocket rather than real mesh hardware. It is never required by
// the core — production traffic arrives over whatever Inbound/Outbound
// pair a real radio collaborator supplies — but it is convenient for
// demoing and for watching multiple simulated nodes at once.
type ConsoleTransport struct {
	conn *websocket.Conn
	ctx  context.Context

	events    chan InboundEvent
	doneCh    chan struct{}
	ready     atomic.Bool
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewConsoleTransport wraps an accepted WebSocket connection as a
// combined Inbound/Outbound pair. ctx scopes the connection's read and
// write operations; it should outlive the connection's handler.
func NewConsoleTransport(ctx context.Context, conn *websocket.Conn) *ConsoleTransport {
	c := &ConsoleTransport{
		conn:   conn,
		ctx:    ctx,
		events: make(chan InboundEvent, 64),
		doneCh: make(chan struct{}),
	}
	c.ready.Store(true)
	go c.readLoop()
	return c
}

func (c *ConsoleTransport) readLoop() {
	defer close(c.events)

	for {
		_, data, err := c.conn.Read(c.ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			return
		}

		var frame consoleFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		evt := InboundEvent{NodeID: frame.NodeID, Text: frame.Text, Reliable: true}
		select {
		case c.events <- evt:
		case <-c.doneCh:
			return
		}
	}
}

func (c *ConsoleTransport) Events() <-chan InboundEvent { return c.events }

// Send delivers text to nodeID as a single JSON frame per chunk.
func (c *ConsoleTransport) Send(nodeID, text string) error {
	if !c.ready.Load() {
		return ErrTransportClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for _, chunk := range ChunkText(text, MaxFrameBytes) {
		data, err := json.Marshal(consoleFrame{NodeID: nodeID, Text: chunk})
		if err != nil {
			return err
		}
		if err := c.conn.Write(c.ctx, websocket.MessageText, data); err != nil {
			return err
		}
	}
	return nil
}

func (c *ConsoleTransport) IsReady() bool { return c.ready.Load() }

// Close sends a close frame and shuts the connection down. Safe to
// call more than once.
func (c *ConsoleTransport) Close() error {
	c.closeOnce.Do(func() {
		c.ready.Store(false)
		close(c.doneCh)
		c.conn.Close(websocket.StatusNormalClosure, "")
	})
	return nil
}
