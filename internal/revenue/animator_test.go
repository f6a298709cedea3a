package revenue

import (
	"math"
	"testing"
	"time"
)

func newTestAnimator(initial float64) (*Animator, *fakeClock) {
	clock := newFakeClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	return NewAnimator(clock, 500*time.Millisecond, initial), clock
}

func TestSampleEndpointsExact(t *testing.T) {
	a, clock := newTestAnimator(100)
	a.SetTarget(200)

	if got := a.Sample(); got != 100 {
		t.Fatalf("sample at progress 0 = %v, want exactly 100", got)
	}
	clock.Advance(500 * time.Millisecond)
	if got := a.Sample(); got != 200 {
		t.Fatalf("sample at progress 1 = %v, want exactly 200", got)
	}
	// Settled: further samples stay at the committed target.
	clock.Advance(time.Second)
	if got := a.Sample(); got != 200 {
		t.Fatalf("settled sample = %v, want 200", got)
	}
}

func TestCubicEaseOutMidpoint(t *testing.T) {
	// 100 -> 200 over 500ms; at 250ms progress is 0.5, eased 0.875.
	a, clock := newTestAnimator(100)
	a.SetTarget(200)
	clock.Advance(250 * time.Millisecond)
	if got := a.Sample(); math.Abs(got-187.5) > 1e-9 {
		t.Fatalf("sample at 250ms = %v, want 187.5", got)
	}
}

func TestRetargetStartsFromDisplayedValue(t *testing.T) {
	// Second target arrives 100ms into a 100 -> 200 animation. Progress is
	// 0.2, eased 0.488, displayed 148.8; the new animation must start there
	// rather than at 100 or 200.
	a, clock := newTestAnimator(100)
	a.SetTarget(200)
	clock.Advance(100 * time.Millisecond)

	a.SetTarget(300)
	got := a.Sample()
	if math.Abs(got-148.8) > 1e-6 {
		t.Fatalf("start of retargeted animation = %v, want 148.8", got)
	}
	clock.Advance(500 * time.Millisecond)
	if got := a.Sample(); got != 300 {
		t.Fatalf("settled retargeted sample = %v, want exactly 300", got)
	}
}

func TestSampleMonotonicTowardTarget(t *testing.T) {
	a, clock := newTestAnimator(0)
	a.SetTarget(1000)
	prev := a.Sample()
	for i := 0; i < 50; i++ {
		clock.Advance(10 * time.Millisecond)
		cur := a.Sample()
		if cur < prev {
			t.Fatalf("sample decreased: %v -> %v at step %d", prev, cur, i)
		}
		prev = cur
	}
	if prev != 1000 {
		t.Fatalf("final sample = %v, want 1000", prev)
	}
}

func TestSampleWithoutTargetReturnsBaseline(t *testing.T) {
	a, clock := newTestAnimator(47832.56)
	if got := a.Sample(); got != 47832.56 {
		t.Fatalf("idle sample = %v, want 47832.56", got)
	}
	clock.Advance(time.Second)
	if got := a.Sample(); got != 47832.56 {
		t.Fatalf("idle sample after time = %v, want 47832.56", got)
	}
}
