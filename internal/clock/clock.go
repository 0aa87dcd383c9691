// Package clock implements the world's monotonic simulated clock: an
// integer day/hour/minute/second counter advanced in fixed quanta by the
// action lifecycle driver.
package clock

import "fmt"

// Time is a point on the simulated world clock.
type Time struct {
	Day    int
	Hour   int
	Minute int
	Second int
}

// String renders the time the way a status line or log message would.
func (t Time) String() string {
	return fmt.Sprintf("day %d, %02d:%02d:%02d", t.Day, t.Hour, t.Minute, t.Second)
}

// totalSeconds flattens Time to a single second count for arithmetic.
func (t Time) totalSeconds() int64 {
	return int64(t.Second) + 60*(int64(t.Minute)+60*(int64(t.Hour)+24*int64(t.Day)))
}

// fromSeconds rebuilds a Time from a flattened second count.
func fromSeconds(total int64) Time {
	if total < 0 {
		total = 0
	}
	second := total % 60
	total /= 60
	minute := total % 60
	total /= 60
	hour := total % 24
	total /= 24
	return Time{Day: int(total), Hour: int(hour), Minute: int(minute), Second: int(second)}
}

// Add returns t advanced by the given number of seconds.
func (t Time) Add(seconds int) Time {
	return fromSeconds(t.totalSeconds() + int64(seconds))
}

// Before reports whether t occurs strictly before other.
func (t Time) Before(other Time) bool {
	return t.totalSeconds() < other.totalSeconds()
}

// DefaultQuantum is the simulated seconds a single tick advances the
// clock by, absent server configuration overriding it.
const DefaultQuantum = 15

// Clock is the world's single monotonic time source. Only the action
// lifecycle driver ever calls Tick — every other reader only observes
// Now().
type Clock struct {
	now     Time
	quantum int
}

// New creates a clock starting at the zero Time, ticking by quantum
// seconds (use clock.DefaultQuantum unless configured otherwise).
func New(quantum int) *Clock {
	if quantum <= 0 {
		quantum = DefaultQuantum
	}
	return &Clock{quantum: quantum}
}

// Now returns the current simulated time. No action ever observes a
// partially-updated clock because Tick is only called between rounds,
// never concurrently with action execution.
func (c *Clock) Now() Time {
	return c.now
}

// Tick advances the clock by exactly one quantum.
func (c *Clock) Tick() Time {
	c.now = c.now.Add(c.quantum)
	return c.now
}

// Quantum returns the configured tick size in seconds.
func (c *Clock) Quantum() int {
	return c.quantum
}
