// Package serial abstracts the serial link a pin-expander board hangs
// off of, so the expander driver can run against real hardware or an
// in-memory port in tests.
package serial

import "io"

// Port is one byte-stream connection to a board.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes buffered on the link.
	Flush() error
}

// Config selects the device and link parameters for a native port.
type Config struct {
	Device      string // device path, e.g. "/dev/ttyUSB0"
	Baud        int    // ignored by USB CDC devices
	ReadTimeout int    // per-Read timeout in milliseconds, 0 blocks
}

// DefaultConfig returns the link parameters expander boards ship with:
// 115200 baud with a 100ms read timeout so a dead board surfaces as a
// short read instead of a hang.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
