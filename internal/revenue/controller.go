package revenue

import (
	"fmt"
	"sync"
	"time"

	"revpulse.io/internal/obs"
)

// Controller owns the LIVE/PAUSED state machine and the two timer handles
// driving the simulation: the per-second revenue tick and the jittered
// transaction schedule. A single mutex serializes ticks, emissions, toggles
// and read-model snapshots, so the simulation behaves as a strict sequence
// of discrete steps even inside a concurrent HTTP host.
type Controller struct {
	mu    sync.Mutex
	cfg   Config
	clock Clock

	acc  *Accumulator
	feed *Feed
	gen  *Generator
	anim *Animator

	// publish receives every emitted transaction together with the total
	// after it was applied. Optional.
	publish func(Transaction, int64)

	live      bool
	epoch     uint64 // bumped on every transition; stale timers check it
	tickTimer Timer
	txTimer   Timer
	burstLeft int
}

// NewController wires the simulation together. It starts PAUSED; call Start
// to enter the initial LIVE state.
func NewController(cfg Config, clock Clock, gen *Generator, publish func(Transaction, int64)) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	if clock == nil {
		clock = SystemClock()
	}
	if gen == nil {
		gen = NewGenerator(0)
	}
	acc, err := NewAccumulator(cfg.SeedTotal, cfg.TickIncrement)
	if err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	return &Controller{
		cfg:     cfg,
		clock:   clock,
		acc:     acc,
		feed:    NewFeed(cfg.FeedCapacity),
		gen:     gen,
		anim:    NewAnimator(clock, cfg.AnimationDuration, float64(cfg.SeedTotal)/100),
		publish: publish,
	}, nil
}

// Start enters the initial LIVE state. Equivalent to Resume.
func (c *Controller) Start() { c.Resume() }

// Resume transitions PAUSED -> LIVE: restarts the tick cadence and a fresh
// burst-of-N transaction sequence. Never resumes a prior partial delay, and
// applies no catch-up for ticks missed while paused. No-op while live.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live {
		return
	}
	c.live = true
	c.epoch++
	obs.SetLive(true)
	obs.SetRevenueTotal(c.acc.Total())

	epoch := c.epoch
	c.tickTimer = c.clock.AfterFunc(c.cfg.TickInterval, func() { c.onTick(epoch) })
	c.burstLeft = c.cfg.BurstCount
	c.emitLocked(epoch)
}

// Pause transitions LIVE -> PAUSED, synchronously cancelling both timers.
// Bumping the epoch also invalidates any callback that already fired and is
// waiting on the mutex. Idempotent.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live {
		return
	}
	c.live = false
	c.epoch++
	if c.tickTimer != nil {
		c.tickTimer.Stop()
		c.tickTimer = nil
	}
	if c.txTimer != nil {
		c.txTimer.Stop()
		c.txTimer = nil
	}
	obs.SetLive(false)
}

// Close tears the simulation down at session end.
func (c *Controller) Close() { c.Pause() }

// Live reports whether the simulation is in the LIVE state.
func (c *Controller) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func (c *Controller) onTick(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live || epoch != c.epoch {
		return // stale timer from a previous live period
	}
	c.acc.Tick()
	c.anim.SetTarget(c.acc.TotalMajor())
	obs.CountTick()
	obs.SetRevenueTotal(c.acc.Total())
	c.tickTimer = c.clock.AfterFunc(c.cfg.TickInterval, func() { c.onTick(epoch) })
}

func (c *Controller) onTxTimer(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live || epoch != c.epoch {
		return
	}
	c.emitLocked(epoch)
}

// emitLocked generates one transaction and applies it to the accumulator,
// the feed and the animator in the same step, then schedules the next
// emission: burst spacing while the burst lasts, jittered delay after.
func (c *Controller) emitLocked(epoch uint64) {
	tx := c.gen.Next(c.clock.Now())
	if err := c.acc.Apply(tx.Amount); err != nil {
		// Tier amounts are positive by construction; a rejection here is a
		// programming defect and must not be swallowed.
		obs.LogSim("transaction.rejected", map[string]any{
			"id":     tx.ID,
			"amount": tx.Amount,
			"error":  err.Error(),
		})
		return
	}
	c.feed.Append(tx)
	c.anim.SetTarget(c.acc.TotalMajor())
	obs.CountTransaction(string(tx.Category))
	obs.SetRevenueTotal(c.acc.Total())
	if c.publish != nil {
		c.publish(tx, c.acc.Total())
	}

	if c.burstLeft > 0 {
		c.burstLeft--
	}
	delay := c.cfg.BurstSpacing
	if c.burstLeft == 0 {
		delay = c.gen.Jitter(c.cfg.DelayMin, c.cfg.DelayMax)
	}
	c.txTimer = c.clock.AfterFunc(delay, func() { c.onTxTimer(epoch) })
}

// Dashboard is the read model consumed by the presentation layer.
type Dashboard struct {
	DisplayedTotal float64        `json:"displayed_total"` // latest animator sample, major units
	SettledTotal   float64        `json:"settled_total"`   // committed total, major units
	SettledMinor   int64          `json:"settled_total_minor_units"`
	Derived        DerivedMetrics `json:"derived"`
	Live           bool           `json:"live"`
	AsOf           time.Time      `json:"as_of"`
}

// Snapshot samples the animator and projects the derived metrics.
func (c *Controller) Snapshot() Dashboard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Dashboard{
		DisplayedTotal: c.anim.Sample(),
		SettledTotal:   c.acc.TotalMajor(),
		SettledMinor:   c.acc.Total(),
		Derived:        c.acc.Derived(),
		Live:           c.live,
		AsOf:           c.clock.Now().UTC(),
	}
}

// Transactions returns the feed snapshot, newest first.
func (c *Controller) Transactions() []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feed.Snapshot()
}
