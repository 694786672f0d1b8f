package wiring

// ClockDriver is the abstract monotonic clock interface behind Micros
// and Millis.
type ClockDriver interface {
	// MonotonicNow returns the current monotonic time as seconds and
	// nanoseconds since an arbitrary epoch. Returns an error if the
	// underlying clock read fails.
	MonotonicNow() (sec int64, nsec int64, err error)
}

// Global singleton used by the wiring core.
var clockDriver ClockDriver

// SetClockDriver is called by platform-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// MustClock returns the configured driver or panics if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		panic("wiring: clock driver not configured")
	}
	return clockDriver
}
