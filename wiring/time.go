// Time: blocking delays and monotonic clock reads.
package wiring

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrClockRead reports a failed monotonic clock read.
var ErrClockRead = errors.New("wiring: clock time error")

// sleeper is the sleep source behind Delay and DelayMicroseconds.
// A real clock by default; tests swap in a mock.
var sleeper clock.Clock = clock.New()

// Delay pauses the calling goroutine for at least the given number of
// milliseconds. There are 1000 milliseconds in 1 second.
func Delay(ms uint32) {
	sleeper.Sleep(time.Duration(ms) * time.Millisecond)
}

// DelayMicroseconds pauses the calling goroutine for at least the given
// number of microseconds.
func DelayMicroseconds(us uint32) {
	sleeper.Sleep(time.Duration(us) * time.Microsecond)
}

// Micros returns the number of microseconds since an arbitrary epoch.
// The value wraps back to zero after some time; callers comparing
// timestamps must tolerate the wrap. A failed clock read is reported to
// the diagnostic sink and returned as ErrClockRead.
func Micros() (uint64, error) {
	sec, nsec, err := MustClock().MonotonicNow()
	if err != nil {
		debugf("clock time error: %v", err)
		return 0, ErrClockRead
	}
	return uint64(sec)*1000000 + uint64(nsec)/1000, nil
}

// Millis returns milliseconds since the same epoch as Micros, with the
// same wraparound contract. A clock read failure propagates; it is
// never divided into a plausible-looking millisecond count.
func Millis() (uint64, error) {
	us, err := Micros()
	if err != nil {
		return 0, err
	}
	return us / 1000, nil
}
