// Analog I/O: reference and resolution configuration plus the
// channel acquisition sequence behind AnalogRead.
package wiring

import (
	"errors"

	"go.uber.org/atomic"
)

// ErrNotAnalogPin reports an AnalogRead on a pin outside the board's
// analog-capable range.
var ErrNotAnalogPin = errors.New("wiring: not an analog pin")

// AnalogReferenceMode selects the voltage reference used for analog
// input (the value used as top of the input range).
type AnalogReferenceMode uint8

// ReferenceDefault is the board-standard analog reference.
const ReferenceDefault AnalogReferenceMode = 0

// Process-wide analog configuration. Atomics so concurrent readers see
// consistent values; the setters are the only mutation points.
var (
	analogReference = atomic.NewUint32(uint32(ReferenceDefault))
	readResolution  = atomic.NewUint32(10) // bits per AnalogRead result
	writeResolution = atomic.NewUint32(8)  // bits per analog write value
)

// AnalogReference configures the voltage reference used for analog
// input. Drivers consult the active mode when they start a conversion.
func AnalogReference(mode AnalogReferenceMode) {
	analogReference.Store(uint32(mode))
}

// ActiveAnalogReference returns the reference mode conversions run with.
func ActiveAnalogReference() AnalogReferenceMode {
	return AnalogReferenceMode(analogReference.Load())
}

// SetReadResolution adjusts the bit width AnalogRead maps samples to.
func SetReadResolution(bits uint32) {
	readResolution.Store(bits)
}

// ReadResolution returns the bit width of AnalogRead results.
func ReadResolution() uint32 {
	return readResolution.Load()
}

// SetWriteResolution adjusts the bit width of analog output values.
// Consumed by drivers that support analog output.
func SetWriteResolution(bits uint32) {
	writeResolution.Store(bits)
}

// WriteResolution returns the bit width of analog output values.
func WriteResolution() uint32 {
	return writeResolution.Load()
}

// mapResolution converts a sampled value between bit widths. Widths are
// reconciled by shifting, never by scaling: a downscale truncates the
// low-order bits, an upscale zero-extends.
func mapResolution(value, from, to uint32) uint32 {
	if from == to {
		return value
	}
	if from > to {
		return value >> (from - to)
	}
	return value << (to - from)
}

// AnalogRead reads the value from the specified analog pin, mapped to
// the configured read resolution.
//
// Pins outside the analog-capable range are reported to the diagnostic
// sink and rejected with ErrNotAnalogPin before any converter access.
// Pins whose channel is reserved read as zero without touching the
// converter.
func AnalogRead(pin Pin) (uint32, error) {
	pinMap := MustAnalogPinMap()
	first, last := pinMap.AnalogPinRange()
	if pin < first || pin > last {
		debugf("%d is not an analog pin", pin)
		return 0, ErrNotAnalogPin
	}

	ch := pinMap.ChannelFor(pin)
	switch ch.Class {
	case Channel12Bit:
		return convertChannel(ch)
	default:
		return 0, nil
	}
}

// convertChannel runs the acquisition sequence on a standard-width
// channel: enable, start, poll until the conversion completes, read,
// map to the configured read resolution, disable. The channel is never
// left enabled, even when a step fails mid-sequence.
func convertChannel(ch Channel) (uint32, error) {
	drv := MustADC()

	if err := drv.EnableChannel(ch.Number); err != nil {
		return 0, err
	}
	if err := drv.StartConversion(); err != nil {
		_ = drv.DisableChannel(ch.Number)
		return 0, err
	}

	// Wait for end of conversion. Deliberately no timeout: a converter
	// that never reports ready blocks the caller.
	for {
		ready, err := drv.ConversionReady()
		if err != nil {
			_ = drv.DisableChannel(ch.Number)
			return 0, err
		}
		if ready {
			break
		}
	}

	raw, err := drv.ReadLatestValue()
	if err != nil {
		_ = drv.DisableChannel(ch.Number)
		return 0, err
	}
	value := mapResolution(raw, adcResolution, ReadResolution())

	if err := drv.DisableChannel(ch.Number); err != nil {
		return 0, err
	}
	return value, nil
}
