package mush

import (
	"math/rand"
	"testing"

	"github.com/smartyhall/meshbbs/pkg/world"
)

func TestParseLiteralAndTernary(t *testing.T) {
	expr, err := Parse(`has_quest("relay_restoration") ? "known" : "unknown"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	player := &world.PlayerRecord{ActiveQuests: map[string]world.QuestProgress{
		"relay_restoration": {},
	}}
	ctx := &ActionContext{Player: player}
	v, effects := expr.Eval(ctx)
	if v != "known" {
		t.Fatalf("expected known branch, got %v", v)
	}
	if len(effects) != 0 {
		t.Fatalf("expected no side effects from a pure ternary, got %v", effects)
	}
}

func TestParseTernaryMissingQuestTakesElseBranch(t *testing.T) {
	expr, err := Parse(`has_quest("nope") ? "known" : "unknown"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := &ActionContext{Player: &world.PlayerRecord{}}
	v, _ := expr.Eval(ctx)
	if v != "unknown" {
		t.Fatalf("expected unknown branch, got %v", v)
	}
}

func TestAndChainCollectsSideEffectsInOrder(t *testing.T) {
	expr, err := Parse(`message("you feel better") && heal(50) && consume()`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := &ActionContext{Player: &world.PlayerRecord{}}
	_, effects := expr.Eval(ctx)
	if len(effects) != 3 {
		t.Fatalf("expected 3 side effects, got %d: %+v", len(effects), effects)
	}
	if effects[0].Kind != EffectMessage || effects[0].Text != "you feel better" {
		t.Errorf("expected message effect first, got %+v", effects[0])
	}
	if effects[1].Kind != EffectHeal || effects[1].Amount != 50 {
		t.Errorf("expected heal(50) second, got %+v", effects[1])
	}
	if effects[2].Kind != EffectConsume {
		t.Errorf("expected consume third, got %+v", effects[2])
	}
}

func TestAndShortCircuitsOnFalsyLeft(t *testing.T) {
	expr, err := Parse(`has_quest("nope") && heal(999)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := &ActionContext{Player: &world.PlayerRecord{}}
	v, effects := expr.Eval(ctx)
	if v != false {
		t.Fatalf("expected false result, got %v", v)
	}
	if len(effects) != 0 {
		t.Fatalf("expected the right side to be skipped, got %+v", effects)
	}
}

func TestRandomChanceUsesProvidedRng(t *testing.T) {
	expr, err := Parse(`random_chance(100)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := &ActionContext{Player: &world.PlayerRecord{}, Rng: rand.New(rand.NewSource(1))}
	v, _ := expr.Eval(ctx)
	if v != true {
		t.Fatalf("expected a 100%% chance to always hit, got %v", v)
	}
}

func TestParseRejectsUnterminatedString(t *testing.T) {
	if _, err := Parse(`message("oops`); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestParseRejectsTrailingTokens(t *testing.T) {
	if _, err := Parse(`"a" "b"`); err == nil {
		t.Fatal("expected an error for trailing tokens after a complete expression")
	}
}

func TestTeleportEffectCarriesDestination(t *testing.T) {
	expr, err := Parse(`message("the stone hums") && teleport("town_square")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ctx := &ActionContext{Player: &world.PlayerRecord{}}
	_, effects := expr.Eval(ctx)
	if len(effects) != 2 || effects[1].Kind != EffectTeleport || effects[1].Text != "town_square" {
		t.Fatalf("expected a teleport effect targeting town_square, got %+v", effects)
	}
}
