package revenue

import (
	"math"
	"time"
)

// Animator smooths the displayed total between discrete updates with a cubic
// ease-out curve. It owns no goroutine: it is a pure function of elapsed time
// plus the mutable animation state, sampled on demand by the read model.
type Animator struct {
	clock    Clock
	duration time.Duration

	committed float64 // last settled displayed value
	start     float64
	target    float64
	startTime time.Time
	active    bool
}

// NewAnimator starts settled at initial, with the given interpolation window.
func NewAnimator(clock Clock, duration time.Duration, initial float64) *Animator {
	return &Animator{
		clock:     clock,
		duration:  duration,
		committed: initial,
	}
}

// SetTarget begins a new interpolation toward target. When called while an
// animation is still running, the new start value is the currently displayed
// interpolated value, not the previous target, so rapid retargets never jump.
func (a *Animator) SetTarget(target float64) {
	now := a.clock.Now()
	if a.active {
		a.start = a.valueAt(now)
	} else {
		a.start = a.committed
	}
	a.target = target
	a.startTime = now
	a.active = true
}

// Sample returns the displayed value for the current instant. Once progress
// reaches 1 the target becomes the committed baseline for the next retarget.
func (a *Animator) Sample() float64 {
	if !a.active {
		return a.committed
	}
	now := a.clock.Now()
	if now.Sub(a.startTime) >= a.duration {
		a.committed = a.target
		a.active = false
		return a.committed
	}
	return a.valueAt(now)
}

// Target returns the value the animation is settling toward.
func (a *Animator) Target() float64 {
	if a.active {
		return a.target
	}
	return a.committed
}

func (a *Animator) valueAt(now time.Time) float64 {
	progress := float64(now.Sub(a.startTime)) / float64(a.duration)
	if progress <= 0 {
		return a.start
	}
	if progress >= 1 {
		return a.target
	}
	eased := 1 - math.Pow(1-progress, 3)
	return a.start + (a.target-a.start)*eased
}
