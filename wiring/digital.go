// Digital I/O: pin direction configuration and level read/write.
package wiring

import "errors"

// ErrInvalidPinMode reports a SetPinMode call with a mode outside
// Input/Output.
var ErrInvalidPinMode = errors.New("wiring: pin mode must be Input or Output")

// SetPinMode configures the specified pin to behave either as an input
// or an output. The pin's hardware resource is acquired here, lazily
// and idempotently, before the direction is set; raw reads and writes
// never acquire.
//
// An invalid mode is reported to the diagnostic sink and rejected
// without touching the hardware.
func SetPinMode(pin Pin, mode PinMode) error {
	if mode != Input && mode != Output {
		debugf("pin %d: mode can be either Input or Output", pin)
		return ErrInvalidPinMode
	}
	drv := MustGPIO()
	if err := drv.Acquire(pin); err != nil {
		return err
	}
	return drv.SetDirection(pin, mode)
}

// DigitalWrite drives a High or Low level on a pin. No mode check is
// performed: writing a pin that is not configured as an output is the
// caller's responsibility.
func DigitalWrite(pin Pin, level Level) error {
	return MustGPIO().SetValue(pin, level)
}

// DigitalRead reads the level of a digital pin. Driver errors for
// invalid or unacquired pins are propagated as-is.
func DigitalRead(pin Pin) (Level, error) {
	return MustGPIO().GetValue(pin)
}
