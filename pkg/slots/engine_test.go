package slots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePlayersFixture(t *testing.T, baseDir string, file PlayersFile) {
	t.Helper()
	dir := filepath.Join(baseDir, "slotmachine")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := json.Marshal(file)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "players.json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func writeJackpotFixture(t *testing.T, baseDir string, j globalJackpot) {
	t.Helper()
	dir := filepath.Join(baseDir, "slotmachine")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data, err := json.Marshal(j)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "jackpot.json"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestOutOfCoinsBlocksSpin(t *testing.T) {
	base := t.TempDir()
	writePlayersFixture(t, base, PlayersFile{Players: map[string]PlayerState{
		"node1": {Coins: 0, LastReset: time.Now().UTC()},
	}})

	e := NewEngine(base)
	outcome, bal, err := e.PerformSpin("node1")
	if err != nil {
		t.Fatalf("PerformSpin: %v", err)
	}
	if outcome.R1 != "outofcoins" {
		t.Errorf("expected outofcoins outcome, got %q", outcome.R1)
	}
	if bal != 0 {
		t.Errorf("expected balance 0, got %d", bal)
	}
}

func TestRefillAfter24HoursAllowsSpin(t *testing.T) {
	base := t.TempDir()
	writePlayersFixture(t, base, PlayersFile{Players: map[string]PlayerState{
		"node2": {Coins: 0, LastReset: time.Now().UTC().Add(-(RefillHours + 1) * time.Hour)},
	}})

	e := NewEngine(base)
	_, bal, err := e.PerformSpin("node2")
	if err != nil {
		t.Fatalf("PerformSpin: %v", err)
	}
	if bal < DailyGrant-BetCoins {
		t.Errorf("expected balance >= %d, got %d", DailyGrant-BetCoins, bal)
	}
	maxPossible := uint64(DailyGrant-BetCoins) + BetCoins*100 + 100*BetCoins
	if bal > maxPossible {
		t.Errorf("balance %d implausibly high", bal)
	}
}

func TestJackpotPayoutResetsLossesAndCreditsWinner(t *testing.T) {
	base := t.TempDir()
	writePlayersFixture(t, base, PlayersFile{Players: map[string]PlayerState{
		"node3": {Coins: 5, LastReset: time.Now().UTC()},
	}})
	writeJackpotFixture(t, base, globalJackpot{Losses: 1000})

	payout, err := jackpotPayoutAndReset(base, "node3", time.Now().UTC())
	if err != nil {
		t.Fatalf("jackpotPayoutAndReset: %v", err)
	}
	if payout != baseJackpot+1000*BetCoins {
		t.Errorf("unexpected payout: %d", payout)
	}
	j, err := loadJackpot(base)
	if err != nil {
		t.Fatalf("loadJackpot: %v", err)
	}
	if j.Losses != 0 {
		t.Errorf("expected losses reset to 0, got %d", j.Losses)
	}
	if j.LastWinNode != "node3" {
		t.Errorf("expected last winner node3, got %q", j.LastWinNode)
	}
}

func TestEvaluatePayoutTable(t *testing.T) {
	cases := []struct {
		r1, r2, r3 string
		wantMult   int
	}{
		{"seven", "seven", "seven", 100},
		{"bar", "bar", "bar", 50},
		{"bell", "bell", "bell", 20},
		{"cherry", "cherry", "cherry", 5},
		{"cherry", "cherry", "lemon", 3},
		{"cherry", "lemon", "orange", 2},
		{"lemon", "orange", "bell", 0},
	}
	for _, c := range cases {
		mult, _ := evaluate(c.r1, c.r2, c.r3)
		if mult != c.wantMult {
			t.Errorf("evaluate(%s,%s,%s) = %d, want %d", c.r1, c.r2, c.r3, mult, c.wantMult)
		}
	}
}

func TestNextRefillETA(t *testing.T) {
	base := t.TempDir()
	writePlayersFixture(t, base, PlayersFile{Players: map[string]PlayerState{
		"node4": {Coins: 0, LastReset: time.Now().UTC()},
	}})
	_, _, ok, err := NextRefillETA(base, "node4", time.Now().UTC())
	if err != nil {
		t.Fatalf("NextRefillETA: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for an out-of-coins player")
	}

	_, _, ok, err = NextRefillETA(base, "node-unknown", time.Now().UTC())
	if err != nil {
		t.Fatalf("NextRefillETA: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for an unknown player")
	}
}
