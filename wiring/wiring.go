// Package wiring provides Arduino-style pin I/O primitives on top of
// pluggable hardware drivers.
//
// The package exposes the classic wiring surface (SetPinMode,
// DigitalWrite, DigitalRead, AnalogRead, ShiftIn/ShiftOut, Delay,
// Micros) while all register-level work is delegated to GPIODriver,
// ADCDriver and ClockDriver implementations registered by platform
// code. See the drivers subpackages for real backends and the test
// files for fakes.
package wiring

// Pin identifies a hardware pin number
type Pin uint32

// PinMode selects the direction a pin is configured for
type PinMode uint8

const (
	Input  PinMode = iota // digital input
	Output                // digital output
)

// Level is a digital logic level
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

// BitOrder selects bit sequencing for the shift operations
type BitOrder uint8

const (
	LSBFirst BitOrder = iota // least significant bit first
	MSBFirst                 // most significant bit first
)
