package world

import (
	"testing"
	"time"
)

func TestExecuteTradeSwapsCurrencyAndItems(t *testing.T) {
	s := New(t.TempDir())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	alice := PlayerRecord{Username: "alice", Currency: Decimal(100),
		InventoryStacks: []InventoryStack{{ObjectID: "ancient_key", Quantity: 1}}}
	bob := PlayerRecord{Username: "bob", Currency: Decimal(50)}
	if err := s.PutPlayer(alice); err != nil {
		t.Fatal(err)
	}
	if err := s.PutPlayer(bob); err != nil {
		t.Fatal(err)
	}

	trade := TradeSession{
		ID: "trade1", PlayerA: "alice", PlayerB: "bob",
		OfferA: TradeOffer{Items: []InventoryStack{{ObjectID: "ancient_key", Quantity: 1}}, Accepted: true},
		OfferB: TradeOffer{Currency: 20, Accepted: true},
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	if err := s.PutTradeSession(trade); err != nil {
		t.Fatal(err)
	}

	if err := s.ExecuteTrade(trade, now); err != nil {
		t.Fatalf("ExecuteTrade: %v", err)
	}

	aliceAfter, _ := s.GetPlayer("alice")
	bobAfter, _ := s.GetPlayer("bob")

	if aliceAfter.Currency.BaseValue() != 120 {
		t.Fatalf("alice currency after trade: %d", aliceAfter.Currency.BaseValue())
	}
	if bobAfter.Currency.BaseValue() != 30 {
		t.Fatalf("bob currency after trade: %d", bobAfter.Currency.BaseValue())
	}
	if len(aliceAfter.InventoryStacks) != 0 {
		t.Fatalf("alice should have given away the key: %+v", aliceAfter.InventoryStacks)
	}
	held := false
	for _, stack := range bobAfter.InventoryStacks {
		if stack.ObjectID == "ancient_key" && stack.Quantity == 1 {
			held = true
		}
	}
	if !held {
		t.Fatalf("bob should hold the key: %+v", bobAfter.InventoryStacks)
	}

	if _, err := s.GetTradeSession("trade1"); err != ErrNotFound {
		t.Fatalf("trade session should be removed after execution, err=%v", err)
	}

	if len(aliceAfter.TradeHistory) != 1 || aliceAfter.TradeHistory[0].Partner != "bob" {
		t.Fatalf("expected alice's trade history to record bob as partner: %+v", aliceAfter.TradeHistory)
	}
	if aliceAfter.TradeHistory[0].GotCurrency != 20 {
		t.Fatalf("expected alice's history to record the 20 she received, got %+v", aliceAfter.TradeHistory[0])
	}
	if len(bobAfter.TradeHistory) != 1 || bobAfter.TradeHistory[0].Partner != "alice" {
		t.Fatalf("expected bob's trade history to record alice as partner: %+v", bobAfter.TradeHistory)
	}
}

func TestExecuteTradeRejectsExpired(t *testing.T) {
	s := New(t.TempDir())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	trade := TradeSession{ID: "t2", PlayerA: "a", PlayerB: "b", ExpiresAt: now.Add(-time.Minute)}
	if err := s.PutTradeSession(trade); err != nil {
		t.Fatal(err)
	}
	if err := s.ExecuteTrade(trade, now); err != ErrTradeExpired {
		t.Fatalf("expected ErrTradeExpired, got %v", err)
	}
}

func TestExecuteTradeRejectsUnaccepted(t *testing.T) {
	s := New(t.TempDir())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	trade := TradeSession{ID: "t3", PlayerA: "a", PlayerB: "b", ExpiresAt: now.Add(time.Hour)}
	if err := s.PutTradeSession(trade); err != nil {
		t.Fatal(err)
	}
	if err := s.ExecuteTrade(trade, now); err != ErrTradeNotAccepted {
		t.Fatalf("expected ErrTradeNotAccepted, got %v", err)
	}
}

func TestExecuteTradeRejectsInsufficientItems(t *testing.T) {
	s := New(t.TempDir())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	alice := PlayerRecord{Username: "alice", Currency: Decimal(10)}
	bob := PlayerRecord{Username: "bob", Currency: Decimal(10)}
	if err := s.PutPlayer(alice); err != nil {
		t.Fatal(err)
	}
	if err := s.PutPlayer(bob); err != nil {
		t.Fatal(err)
	}

	trade := TradeSession{
		ID: "t4", PlayerA: "alice", PlayerB: "bob",
		OfferA: TradeOffer{Items: []InventoryStack{{ObjectID: "ancient_key", Quantity: 1}}, Accepted: true},
		OfferB: TradeOffer{Accepted: true},
		ExpiresAt: now.Add(time.Hour),
	}
	if err := s.PutTradeSession(trade); err != nil {
		t.Fatal(err)
	}
	if err := s.ExecuteTrade(trade, now); err != ErrInsufficientItems {
		t.Fatalf("expected ErrInsufficientItems, got %v", err)
	}

	// Neither balance should have moved.
	aliceAfter, _ := s.GetPlayer("alice")
	if aliceAfter.Currency.BaseValue() != 10 {
		t.Fatalf("alice balance should be untouched on failure: %+v", aliceAfter)
	}
}
