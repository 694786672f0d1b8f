package wiring

// GPIODriver is the abstract GPIO interface that the wiring core uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// Acquire claims a pin's hardware resource (export, line request,
	// pin-mux setup). Must be idempotent: safe to call repeatedly for
	// the same pin.
	Acquire(pin Pin) error

	// SetDirection configures a pin as Input or Output
	SetDirection(pin Pin, dir PinMode) error

	// SetValue drives the pin high or low
	SetValue(pin Pin, level Level) error

	// GetValue reads the current pin state.
	// Returns an error for invalid or unacquired pins.
	GetValue(pin Pin) (Level, error)
}

// Global singleton used by the wiring core.
var gpioDriver GPIODriver

// SetGPIODriver is called by platform-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("wiring: GPIO driver not configured")
	}
	return gpioDriver
}
