package deck

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown is a deadline-based timer for the current card. Remaining time is
// always recomputed from the deadline, never decremented per tick.
type Countdown struct {
	Generation uint64
	Duration   time.Duration
	Deadline   time.Time

	clock     clockwork.Clock
	remaining time.Duration
	active    bool
}

// countdownDuration rounds the read-time budget to whole seconds, minimum one
func countdownDuration(readTimeSec float64) time.Duration {
	secs := math.Round(readTimeSec)
	if math.IsNaN(secs) || secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

func newCountdown(clock clockwork.Clock, generation uint64, readTimeSec float64) *Countdown {
	d := countdownDuration(readTimeSec)
	return &Countdown{
		Generation: generation,
		Duration:   d,
		Deadline:   clock.Now().Add(d),
		clock:      clock,
		remaining:  d,
		active:     true,
	}
}

// Tick recomputes the remaining time and stops the countdown at zero.
// It returns the remaining time.
func (c *Countdown) Tick() time.Duration {
	if !c.active {
		return c.remaining
	}
	c.remaining = c.Deadline.Sub(c.clock.Now())
	if c.remaining <= 0 {
		c.remaining = 0
		c.active = false
	}
	return c.remaining
}

// Remaining is the time left as of the last tick
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Active reports whether the countdown is still running
func (c *Countdown) Active() bool {
	return c.active
}

// Fraction is remaining/duration in [0, 1]
func (c *Countdown) Fraction() float64 {
	if c.Duration <= 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.Duration)
}

func (c *Countdown) stop() {
	c.active = false
}
