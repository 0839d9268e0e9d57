package component

// Timer counts down in milliseconds. It only advances when ticked, so an
// owner that stops ticking (pause) keeps the remaining time intact.
type Timer struct {
	remainingMs float64
	running     bool
}

// Start (re)arms the timer, discarding any remaining time.
func (t *Timer) Start(ms float64) {
	if ms < 0 {
		ms = 0
	}
	t.remainingMs = ms
	t.running = true
}

func (t *Timer) Stop() {
	t.remainingMs = 0
	t.running = false
}

// Tick advances the timer and reports whether it expired during this tick.
// An expired timer stops and does not fire again until restarted.
func (t *Timer) Tick(dtMs float64) bool {
	if !t.running {
		return false
	}
	t.remainingMs -= dtMs
	if t.remainingMs > 0 {
		return false
	}
	t.remainingMs = 0
	t.running = false
	return true
}

func (t *Timer) Running() bool {
	return t.running
}

func (t *Timer) Remaining() float64 {
	return t.remainingMs
}
