package core

import (
	"fmt"
	"time"
)

// Rules holds the scoring and timing values an engine is built with.
// Durations are converted to whole ticks of TickPeriod, rounding up.
type Rules struct {
	TickPeriod      time.Duration
	SmallItemPoints int
	BigItemPoints   int
	GhostPoints     int
	PowerDuration   time.Duration
	DeadDuration    time.Duration
}

// DefaultRules returns the classic values: 200ms ticks, 10/50/100 points,
// 8s of power mode and 12s for a ghost to revive.
func DefaultRules() Rules {
	return Rules{
		TickPeriod:      200 * time.Millisecond,
		SmallItemPoints: 10,
		BigItemPoints:   50,
		GhostPoints:     100,
		PowerDuration:   8 * time.Second,
		DeadDuration:    12 * time.Second,
	}
}

// Validate checks that the rules can drive an engine.
func (r Rules) Validate() error {
	if r.TickPeriod <= 0 {
		return fmt.Errorf("rules: tick period must be positive, got %v", r.TickPeriod)
	}
	if r.SmallItemPoints < 0 || r.BigItemPoints < 0 || r.GhostPoints < 0 {
		return fmt.Errorf("rules: points must not be negative (small=%d big=%d ghost=%d)",
			r.SmallItemPoints, r.BigItemPoints, r.GhostPoints)
	}
	if r.PowerDuration < 0 || r.DeadDuration < 0 {
		return fmt.Errorf("rules: durations must not be negative (power=%v dead=%v)",
			r.PowerDuration, r.DeadDuration)
	}
	return nil
}

// Ticks converts a duration to the number of ticks it spans: ceil(d / TickPeriod).
func (r Rules) Ticks(d time.Duration) int {
	if d <= 0 || r.TickPeriod <= 0 {
		return 0
	}
	return int((d + r.TickPeriod - 1) / r.TickPeriod)
}
