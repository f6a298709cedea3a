package revenue

import (
	"fmt"
	"time"
)

// Config carries the fixed simulation constants. Zero values are rejected;
// use DefaultConfig and override fields as needed.
type Config struct {
	SeedTotal         int64         // starting total, minor units
	TickIncrement     int64         // added once per tick while live, minor units
	TickInterval      time.Duration // revenue tick cadence
	AnimationDuration time.Duration // counter interpolation window
	FeedCapacity      int           // retained transaction count
	BurstCount        int           // transactions emitted on entering LIVE
	BurstSpacing      time.Duration // spacing between burst emissions
	DelayMin          time.Duration // recurring schedule jitter, inclusive lower bound
	DelayMax          time.Duration // recurring schedule jitter, exclusive upper bound
}

// DefaultConfig returns the demo constants: $47,832.56 seed, $0.23/s drip,
// 500ms ease-out, feed of 10, burst of 5 spaced 200ms, 3-8s jitter.
func DefaultConfig() Config {
	return Config{
		SeedTotal:         4783256,
		TickIncrement:     23,
		TickInterval:      time.Second,
		AnimationDuration: 500 * time.Millisecond,
		FeedCapacity:      10,
		BurstCount:        5,
		BurstSpacing:      200 * time.Millisecond,
		DelayMin:          3 * time.Second,
		DelayMax:          8 * time.Second,
	}
}

// Validate reports the first defect found in the config.
func (c Config) Validate() error {
	switch {
	case c.SeedTotal < 0:
		return fmt.Errorf("%w: seed total must be >= 0", ErrInvalidConfig)
	case c.TickIncrement <= 0:
		return fmt.Errorf("%w: tick increment must be > 0", ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be > 0", ErrInvalidConfig)
	case c.AnimationDuration <= 0:
		return fmt.Errorf("%w: animation duration must be > 0", ErrInvalidConfig)
	case c.FeedCapacity <= 0:
		return fmt.Errorf("%w: feed capacity must be > 0", ErrInvalidConfig)
	case c.BurstCount < 1:
		return fmt.Errorf("%w: burst count must be >= 1", ErrInvalidConfig)
	case c.BurstSpacing <= 0:
		return fmt.Errorf("%w: burst spacing must be > 0", ErrInvalidConfig)
	case c.DelayMin <= 0 || c.DelayMax <= c.DelayMin:
		return fmt.Errorf("%w: jitter bounds must satisfy 0 < min < max", ErrInvalidConfig)
	}
	return nil
}
