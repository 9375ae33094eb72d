// Package round runs the timed search-and-mark rounds: the countdown, the
// score, and the progression from the first round to game over.
package round

// Timer counts down from a base time. It stops itself at zero and raises a
// one-shot expiry flag that JustExpired consumes.
type Timer struct {
	base      float64
	remaining float64
	running   bool
	expired   bool // pending one-shot
}

// Start (re)starts the countdown at base seconds.
func (t *Timer) Start(base float64) {
	t.base = max(0, base)
	t.remaining = t.base
	t.running = true
	t.expired = false
}

// Update advances the countdown by dt while running.
func (t *Timer) Update(dt float64) {
	if !t.running || t.remaining <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		t.expired = true
	}
}

// Expired reports whether no time remains.
func (t *Timer) Expired() bool { return t.remaining <= 0 }

// JustExpired reports the expiry once; later calls return false until the
// timer runs out again.
func (t *Timer) JustExpired() bool {
	if !t.expired {
		return false
	}
	t.expired = false
	return true
}

func (t *Timer) Remaining() float64 { return t.remaining }
func (t *Timer) Base() float64      { return t.base }
func (t *Timer) Running() bool      { return t.running }

// Pause stops the countdown without touching the remaining time.
func (t *Timer) Pause() { t.running = false }

// Resume continues a paused countdown. A timer at zero stays stopped.
func (t *Timer) Resume() { t.running = t.remaining > 0 }

// Reset rewinds to the base time, stopped.
func (t *Timer) Reset() {
	t.remaining = t.base
	t.running = false
	t.expired = false
}

// Set restores a saved timer. remaining is clamped into [0, base].
func (t *Timer) Set(base, remaining float64, running bool) {
	t.base = max(0, base)
	t.remaining = max(0, min(t.base, remaining))
	t.running = running && t.remaining > 0
	t.expired = false
}
