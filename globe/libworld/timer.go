package libworld

import "time"

// Timer is a repeating timer driven by frame deltas.
type Timer struct {
	Duration time.Duration
	elapsed  time.Duration
}

func NewTimer(d time.Duration) *Timer {
	return &Timer{Duration: d}
}

// Tick adds delta and reports whether the timer fired. The overshoot is kept, so a
// long frame fires at most once but does not lose time.
func (t *Timer) Tick(delta time.Duration) bool {
	if t.Duration <= 0 {
		return true
	}
	t.elapsed += delta
	if t.elapsed < t.Duration {
		return false
	}
	t.elapsed %= t.Duration
	return true
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Reset() {
	t.elapsed = 0
}
