package world

import "testing"

func TestCurrencyAddSubtract(t *testing.T) {
	a := Decimal(100)
	b := Decimal(40)

	sum, err := a.Add(b)
	if err != nil || sum.BaseValue() != 140 {
		t.Fatalf("Add: %v %+v", err, sum)
	}

	diff, err := a.Subtract(b)
	if err != nil || diff.BaseValue() != 60 {
		t.Fatalf("Subtract: %v %+v", err, diff)
	}
}

func TestCurrencyUnderflow(t *testing.T) {
	a := Decimal(10)
	b := Decimal(20)
	if _, err := a.Subtract(b); err != ErrCurrencyUnderflow {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestCurrencyVariantMismatch(t *testing.T) {
	a := Decimal(10)
	b := MultiTierAmount(10)
	if _, err := a.Add(b); err != ErrCurrencyVariantMismatch {
		t.Fatalf("expected variant mismatch, got %v", err)
	}
}

func TestCurrencyCanAfford(t *testing.T) {
	wallet := Decimal(50)
	if !wallet.CanAfford(Decimal(50)) {
		t.Fatal("should afford exact balance")
	}
	if wallet.CanAfford(Decimal(51)) {
		t.Fatal("should not afford more than balance")
	}
	if wallet.CanAfford(MultiTierAmount(10)) {
		t.Fatal("mismatched variant should never be affordable")
	}
}
