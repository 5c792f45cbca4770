package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-runner/log"
)

// DefaultTickInterval is used when a scheduler is created with a non-positive interval
const DefaultTickInterval = time.Second / 60

// ClockScheduler drives a tick function on a fixed step.
// Run blocks on the calling goroutine, which becomes the simulation goroutine; only
// Pause/Resume are safe to call from elsewhere.
type ClockScheduler struct {
	tick         func(dt float64)
	tickInterval time.Duration
	logger       *log.Logger

	before []func()
	after  []func()

	isPaused  atomic.Bool
	tickCount atomic.Uint64
}

// NewClockScheduler creates a scheduler calling tick every interval with dt = interval in seconds
func NewClockScheduler(tick func(dt float64), interval time.Duration, logger *log.Logger) *ClockScheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &ClockScheduler{
		tick:         tick,
		tickInterval: interval,
		logger:       log.OrNop(logger).Named("clock"),
	}
}

// OnBeforeTick adds a hook run before each tick, e.g. input snapshotting; must be called before Run
func (cs *ClockScheduler) OnBeforeTick(fn func()) {
	cs.before = append(cs.before, fn)
}

// OnAfterTick adds a hook run after each tick and on paused frames, e.g. rendering; must be called before Run
func (cs *ClockScheduler) OnAfterTick(fn func()) {
	cs.after = append(cs.after, fn)
}

func (cs *ClockScheduler) IsPaused() bool { return cs.isPaused.Load() }

// TogglePause flips the pause state and returns the new value
func (cs *ClockScheduler) TogglePause() bool {
	for {
		old := cs.isPaused.Load()
		if cs.isPaused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// TickCount returns the number of ticks executed
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

// TickInterval returns the fixed step
func (cs *ClockScheduler) TickInterval() time.Duration { return cs.tickInterval }

// Step executes one full cycle regardless of pause state
func (cs *ClockScheduler) Step() {
	for _, fn := range cs.before {
		fn()
	}
	cs.tick(cs.tickInterval.Seconds())
	cs.tickCount.Add(1)
	for _, fn := range cs.after {
		fn()
	}
}

// Run ticks until ctx is cancelled; returns nil on cancellation
func (cs *ClockScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	cs.logger.Info("scheduler started", log.Float64("interval_ms", float64(cs.tickInterval)/float64(time.Millisecond)))
	defer func() {
		cs.logger.Info("scheduler stopped", log.Uint64("ticks", cs.tickCount.Load()))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if cs.isPaused.Load() {
			for _, fn := range cs.after {
				fn()
			}
			continue
		}
		cs.Step()
	}
}
