package metrics

import "testing"

func TestAverageLatency(t *testing.T) {
	r := NewRegistry()
	if got := r.AverageLatencyMillis(); got != 0 {
		t.Fatalf("expected 0 average with no acks, got %v", got)
	}
	r.RecordAcked(100)
	r.RecordAcked(200)
	if got := r.AverageLatencyMillis(); got != 150 {
		t.Fatalf("got %v", got)
	}
}

func TestGameEnterExitTracksPeak(t *testing.T) {
	r := NewRegistry()
	r.GameEnter("tinymush")
	r.GameEnter("tinymush")
	r.GameEnter("tinymush")
	r.GameExit("tinymush")

	snap := r.Snapshot()
	g := snap.Games["tinymush"]
	if g.Entries != 3 || g.Exits != 1 || g.CurrentlyActive != 2 || g.Peak != 3 {
		t.Fatalf("got %+v", g)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	r := NewRegistry()
	r.RecordSent()
	snap := r.Snapshot()
	r.RecordSent()
	if snap.SentTotal != 1 {
		t.Fatalf("snapshot should not observe later writes, got %d", snap.SentTotal)
	}
}
