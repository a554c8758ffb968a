// Package metrics tracks reliable-send/ack/retry counters, ack-latency
// averages, broadcast-ack outcomes, and per-game engagement, the way the
// teacher tracks token/cost usage on its LoopState — plain atomics and a
// mutex-guarded map, read out through an immutable snapshot.
package metrics

import (
	"sync"
	"sync/atomic"
)

// GameStats tracks session engagement for one game slug (e.g.
// "tinymush", "slots").
type GameStats struct {
	Entries         int64
	Exits           int64
	Peak            int64
	CurrentlyActive int64
}

// Registry is the process-wide metrics collector. The zero value is not
// usable — construct with NewRegistry.
type Registry struct {
	sentTotal    atomic.Int64
	ackedTotal   atomic.Int64
	failedTotal  atomic.Int64
	retriesTotal atomic.Int64

	latencySumMillis atomic.Int64
	latencyCount     atomic.Int64

	broadcastConfirmed atomic.Int64
	broadcastExpired   atomic.Int64

	mu    sync.RWMutex
	games map[string]*GameStats
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*GameStats)}
}

// RecordSent increments the reliable-send counter.
func (r *Registry) RecordSent() { r.sentTotal.Add(1) }

// RecordAcked increments the ack counter and folds latencyMillis into
// the running average.
func (r *Registry) RecordAcked(latencyMillis int64) {
	r.ackedTotal.Add(1)
	r.latencySumMillis.Add(latencyMillis)
	r.latencyCount.Add(1)
}

// RecordFailed increments the failed-send counter.
func (r *Registry) RecordFailed() { r.failedTotal.Add(1) }

// RecordRetry increments the retry counter.
func (r *Registry) RecordRetry() { r.retriesTotal.Add(1) }

// RecordBroadcastConfirmed increments the confirmed-broadcast-ack counter.
func (r *Registry) RecordBroadcastConfirmed() { r.broadcastConfirmed.Add(1) }

// RecordBroadcastExpired increments the expired-broadcast-ack counter.
func (r *Registry) RecordBroadcastExpired() { r.broadcastExpired.Add(1) }

// AverageLatencyMillis computes the running mean ack latency on read;
// returns 0 if no acks have been recorded yet.
func (r *Registry) AverageLatencyMillis() float64 {
	count := r.latencyCount.Load()
	if count == 0 {
		return 0
	}
	return float64(r.latencySumMillis.Load()) / float64(count)
}

func (r *Registry) gameStats(slug string) *GameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[slug]
	if !ok {
		g = &GameStats{}
		r.games[slug] = g
	}
	return g
}

// GameEnter records a player entering the named game and updates its
// peak-concurrency high-water mark.
func (r *Registry) GameEnter(slug string) {
	g := r.gameStats(slug)
	atomic.AddInt64(&g.Entries, 1)
	active := atomic.AddInt64(&g.CurrentlyActive, 1)
	for {
		peak := atomic.LoadInt64(&g.Peak)
		if active <= peak || atomic.CompareAndSwapInt64(&g.Peak, peak, active) {
			break
		}
	}
}

// GameExit records a player leaving the named game.
func (r *Registry) GameExit(slug string) {
	g := r.gameStats(slug)
	atomic.AddInt64(&g.Exits, 1)
	atomic.AddInt64(&g.CurrentlyActive, -1)
}

// Snapshot is a value-typed, point-in-time copy of the registry's
// counters — callers can't mutate live state through it.
type Snapshot struct {
	SentTotal          int64
	AckedTotal         int64
	FailedTotal        int64
	RetriesTotal       int64
	AverageLatencyMs   float64
	BroadcastConfirmed int64
	BroadcastExpired   int64
	Games              map[string]GameStats
}

// Snapshot captures the current counter values.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	games := make(map[string]GameStats, len(r.games))
	for slug, g := range r.games {
		games[slug] = GameStats{
			Entries:         atomic.LoadInt64(&g.Entries),
			Exits:           atomic.LoadInt64(&g.Exits),
			Peak:            atomic.LoadInt64(&g.Peak),
			CurrentlyActive: atomic.LoadInt64(&g.CurrentlyActive),
		}
	}
	return Snapshot{
		SentTotal:          r.sentTotal.Load(),
		AckedTotal:         r.ackedTotal.Load(),
		FailedTotal:        r.failedTotal.Load(),
		RetriesTotal:       r.retriesTotal.Load(),
		AverageLatencyMs:   r.AverageLatencyMillis(),
		BroadcastConfirmed: r.broadcastConfirmed.Load(),
		BroadcastExpired:   r.broadcastExpired.Load(),
		Games:              games,
	}
}
