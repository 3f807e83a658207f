package timeutil

import (
	"sync"
	"time"
)

// Clock is the time source used to measure checks.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
	Since(t time.Time) time.Duration
}

// UTCClock is the system clock in UTC.
type UTCClock struct{}

func (UTCClock) Now() time.Time                  { return time.Now().UTC() }
func (UTCClock) Since(t time.Time) time.Duration { return time.Since(t) }

// FrozenClock only moves when told to. Since is measured against the frozen
// time, so durations in tests are exact.
type FrozenClock struct {
	mu sync.RWMutex
	t  time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{t: t}
}

func (c *FrozenClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *FrozenClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

func (c *FrozenClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// StepClock advances by Step on every Now call. Concurrent workers each see
// a distinct instant.
type StepClock struct {
	FrozenClock
	Step time.Duration
}

func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{FrozenClock: FrozenClock{t: start}, Step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.Step)
	return now
}

// Since reads the clock without stepping it.
func (c *StepClock) Since(t time.Time) time.Duration { return c.FrozenClock.Now().Sub(t) }

// Default is the process-wide clock.
var Default Clock = UTCClock{}

func Now() time.Time { return Default.Now() }
