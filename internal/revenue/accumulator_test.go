package revenue

import (
	"errors"
	"math"
	"testing"
)

func TestSeedAndTicks(t *testing.T) {
	// 47832.56 seeded, 0.23 per tick, 3 ticks -> 47833.25.
	acc, err := NewAccumulator(4783256, 23)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		acc.Tick()
	}
	if acc.Total() != 4783325 {
		t.Fatalf("total = %d, want 4783325", acc.Total())
	}
	if acc.TotalMajor() != 47833.25 {
		t.Fatalf("major total = %v, want 47833.25", acc.TotalMajor())
	}
}

func TestApplyIncreasesTotalExactly(t *testing.T) {
	acc, err := NewAccumulator(1000, 23)
	if err != nil {
		t.Fatal(err)
	}
	if err := acc.Apply(4999); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if acc.Total() != 5999 {
		t.Fatalf("total = %d, want 5999", acc.Total())
	}
}

func TestApplyRejectsNonPositive(t *testing.T) {
	acc, err := NewAccumulator(1000, 23)
	if err != nil {
		t.Fatal(err)
	}
	for _, amount := range []int64{0, -1, -4999} {
		if err := acc.Apply(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Apply(%d) = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if acc.Total() != 1000 {
		t.Fatalf("total mutated by rejected amounts: %d", acc.Total())
	}
}

func TestNewAccumulatorValidation(t *testing.T) {
	if _, err := NewAccumulator(-1, 23); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("negative seed: %v, want ErrInvalidSeed", err)
	}
	if _, err := NewAccumulator(0, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero increment: %v, want ErrInvalidAmount", err)
	}
}

func TestDerivedProjections(t *testing.T) {
	acc, err := NewAccumulator(100000, 23) // $1000.00
	if err != nil {
		t.Fatal(err)
	}
	d := acc.Derived()
	const eps = 1e-9
	if math.Abs(d.Today-32.0) > eps {
		t.Fatalf("today = %v, want 32.0", d.Today)
	}
	if math.Abs(d.Month-410.0) > eps {
		t.Fatalf("month = %v, want 410.0", d.Month)
	}
	if math.Abs(d.AvgPerDay-410.0/30) > eps {
		t.Fatalf("avg/day = %v, want %v", d.AvgPerDay, 410.0/30)
	}
}
