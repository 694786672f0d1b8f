package wiring

// adcResolution is the native sample width of the board's standard
// converter lines (12-bit).
const adcResolution = 12

// ChannelClass describes the converter line width behind an analog pin.
type ChannelClass uint8

const (
	// Channel12Bit marks a standard-width 12-bit converter line.
	Channel12Bit ChannelClass = iota

	// ChannelReserved marks a reserved or unmapped line. Reads return
	// zero without touching the converter.
	ChannelReserved
)

// Channel is one entry of the pin-to-channel lookup table.
type Channel struct {
	Number uint32       // converter channel number
	Class  ChannelClass // line width class
}

// ADCDriver is the abstract analog converter interface that the wiring
// core drives through its enable/start/poll/read/disable sequence.
type ADCDriver interface {
	// EnableChannel connects a channel to the converter
	EnableChannel(ch uint32) error

	// DisableChannel disconnects a channel from the converter
	DisableChannel(ch uint32) error

	// StartConversion kicks off a conversion on the enabled channel
	StartConversion() error

	// ConversionReady reports whether the latest conversion finished
	ConversionReady() (bool, error)

	// ReadLatestValue returns the most recent converted sample at the
	// converter's native resolution
	ReadLatestValue() (uint32, error)
}

// AnalogPinMap is the board's pin-to-channel lookup table.
type AnalogPinMap interface {
	// AnalogPinRange returns the inclusive bounds of the analog-capable
	// pin numbers.
	AnalogPinRange() (first, last Pin)

	// ChannelFor resolves the converter channel behind an analog pin.
	// Only called for pins inside AnalogPinRange.
	ChannelFor(pin Pin) Channel
}

// Global singletons used by the wiring core.
var (
	adcDriver    ADCDriver
	analogPinMap AnalogPinMap
)

// SetADCDriver is called by platform-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("wiring: ADC driver not configured")
	}
	return adcDriver
}

// SetAnalogPinMap registers the board's pin-to-channel table.
func SetAnalogPinMap(m AnalogPinMap) {
	analogPinMap = m
}

// MustAnalogPinMap returns the configured table or panics if missing.
func MustAnalogPinMap() AnalogPinMap {
	if analogPinMap == nil {
		panic("wiring: analog pin map not configured")
	}
	return analogPinMap
}
