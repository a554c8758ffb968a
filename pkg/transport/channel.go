package transport

import (
	"sync"
	"sync/atomic"
)

// ChannelPair is an in-process Inbound/Outbound pair connected by Go
// channels — no radio, no serialization. A test or demo harness holds
// the Driver side: Inject feeds simulated node traffic in, Outgoing
// drains rendered responses out.
type ChannelPair struct {
	events    chan InboundEvent
	responses chan nodeResponse
	doneCh    chan struct{}
	ready     atomic.Bool
	closeOnce sync.Once
}

type nodeResponse struct {
	NodeID string
	Text   string
}

// NewChannelPair creates a connected Inbound/Outbound pair. bufferSize
// controls the capacity of both the inbound and outbound channels.
func NewChannelPair(bufferSize int) *ChannelPair {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	p := &ChannelPair{
		events:    make(chan InboundEvent, bufferSize),
		responses: make(chan nodeResponse, bufferSize),
		doneCh:    make(chan struct{}),
	}
	p.ready.Store(true)
	return p
}

// Inbound returns the Inbound side of the pair, for wiring into a Router.
func (p *ChannelPair) Inbound() Inbound { return (*channelInbound)(p) }

// Outbound returns the Outbound side of the pair, for wiring into a Router.
func (p *ChannelPair) Outbound() Outbound { return (*channelOutbound)(p) }

// Inject delivers a simulated inbound event as though it had arrived
// over the radio. Returns ErrTransportClosed once the pair is closed.
func (p *ChannelPair) Inject(evt InboundEvent) error {
	if !p.ready.Load() {
		return ErrTransportClosed
	}
	select {
	case p.events <- evt:
		return nil
	case <-p.doneCh:
		return ErrTransportClosed
	}
}

// Drain blocks for the next rendered response sent to nodeID along
// with its text, or returns ok=false once the pair is closed and
// drained.
func (p *ChannelPair) Drain() (nodeID, text string, ok bool) {
	select {
	case r, open := <-p.responses:
		if !open {
			return "", "", false
		}
		return r.NodeID, r.Text, true
	case <-p.doneCh:
		return "", "", false
	}
}

// Close shuts the pair down. Safe to call more than once.
func (p *ChannelPair) Close() error {
	p.closeOnce.Do(func() {
		p.ready.Store(false)
		close(p.doneCh)
		close(p.events)
	})
	return nil
}

type channelInbound ChannelPair

func (c *channelInbound) Events() <-chan InboundEvent { return c.events }
func (c *channelInbound) Close() error                { return (*ChannelPair)(c).Close() }

type channelOutbound ChannelPair

func (c *channelOutbound) IsReady() bool { return c.ready.Load() }
func (c *channelOutbound) Close() error  { return (*ChannelPair)(c).Close() }

func (c *channelOutbound) Send(nodeID, text string) error {
	if !c.ready.Load() {
		return ErrTransportClosed
	}
	for _, chunk := range ChunkText(text, MaxFrameBytes) {
		select {
		case c.responses <- nodeResponse{NodeID: nodeID, Text: chunk}:
		case <-c.doneCh:
			return ErrTransportClosed
		}
	}
	return nil
}
