package world

import "testing"

func TestConditionEvaluate(t *testing.T) {
	p := &PlayerRecord{
		Currency:        Decimal(30),
		CompletedQuests: map[string]bool{"relay_restoration": true},
		InventoryStacks: []InventoryStack{{ObjectID: "ancient_key", Quantity: 1}},
		Flags:           map[string]bool{"met_mayor": true},
	}

	cases := []struct {
		name string
		c    Condition
		want bool
	}{
		{"no condition", Condition{}, true},
		{"has flag true", Condition{Kind: HasFlag, Flag: "met_mayor", FlagValue: true}, true},
		{"has flag false", Condition{Kind: HasFlag, Flag: "met_mayor", FlagValue: false}, false},
		{"has flag missing", Condition{Kind: HasFlag, Flag: "unknown", FlagValue: true}, false},
		{"has currency enough", Condition{Kind: HasCurrency, MinCurrency: 30}, true},
		{"has currency not enough", Condition{Kind: HasCurrency, MinCurrency: 31}, false},
		{"has completed quest", Condition{Kind: HasCompletedQuest, QuestID: "relay_restoration"}, true},
		{"has not completed quest", Condition{Kind: HasCompletedQuest, QuestID: "other"}, false},
		{"has item", Condition{Kind: HasItem, ItemID: "ancient_key"}, true},
		{"has item missing", Condition{Kind: HasItem, ItemID: "teleport_stone"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Evaluate(p); got != tc.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDialogActionApply(t *testing.T) {
	p := &PlayerRecord{Currency: Decimal(50)}

	if err := (DialogAction{Kind: GiveCurrency, Amount: 25}).Apply(p); err != nil {
		t.Fatalf("GiveCurrency: %v", err)
	}
	if p.Currency.BaseValue() != 75 {
		t.Fatalf("after GiveCurrency: %d", p.Currency.BaseValue())
	}

	if err := (DialogAction{Kind: TakeCurrency, Amount: 100}).Apply(p); err == nil {
		t.Fatal("expected underflow taking more than balance")
	}

	if err := (DialogAction{Kind: TakeCurrency, Amount: 25}).Apply(p); err != nil {
		t.Fatalf("TakeCurrency: %v", err)
	}
	if p.Currency.BaseValue() != 50 {
		t.Fatalf("after TakeCurrency: %d", p.Currency.BaseValue())
	}

	if err := (DialogAction{Kind: GiveItem, ItemID: "healing_potion", Quantity: 2}).Apply(p); err != nil {
		t.Fatalf("GiveItem: %v", err)
	}
	if len(p.InventoryStacks) != 1 || p.InventoryStacks[0].Quantity != 2 {
		t.Fatalf("after GiveItem: %+v", p.InventoryStacks)
	}

	if err := (DialogAction{Kind: SetFlag, Flag: "met_mayor", Value: true}).Apply(p); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if !p.Flags["met_mayor"] {
		t.Fatalf("flag not set: %+v", p.Flags)
	}

	if err := (DialogAction{Kind: StartQuest, QuestID: "relay_restoration"}).Apply(p); err != nil {
		t.Fatalf("StartQuest: %v", err)
	}
	if _, ok := p.ActiveQuests["relay_restoration"]; !ok {
		t.Fatalf("quest not started: %+v", p.ActiveQuests)
	}
}
