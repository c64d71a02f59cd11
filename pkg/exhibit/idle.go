package exhibit

import "time"

// IdleMonitor accumulates quiet time between user interactions and fires
// once when Timeout has passed. It is driven by the same deltas as the
// autoplay controller and owns no timer.
type IdleMonitor struct {
	// Timeout is the quiet time before firing. Zero disables the monitor.
	Timeout time.Duration

	quiet time.Duration
	fired bool
}

// NewIdleMonitor creates a monitor that has not seen any interaction yet.
func NewIdleMonitor(timeout time.Duration) *IdleMonitor {
	return &IdleMonitor{Timeout: timeout}
}

// Touch records an interaction and re-arms the monitor.
func (m *IdleMonitor) Touch() {
	m.quiet = 0
	m.fired = false
}

// Tick adds delta to the quiet time and reports whether the timeout was
// crossed on this call. It reports true at most once per Touch.
func (m *IdleMonitor) Tick(delta time.Duration) bool {
	if m.Timeout <= 0 || m.fired {
		return false
	}
	m.quiet += delta
	if m.quiet >= m.Timeout {
		m.fired = true
		return true
	}
	return false
}

// Quiet returns the time since the last interaction.
func (m *IdleMonitor) Quiet() time.Duration { return m.quiet }
