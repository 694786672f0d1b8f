package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// nativePort drives a real device node through tarm/serial.
type nativePort struct {
	port *serial.Port
}

// Open opens the configured device node.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("serial: nil config")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}
	return &nativePort{port: port}, nil
}

func (p *nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *nativePort) Flush() error                { return p.port.Flush() }
func (p *nativePort) Close() error                { return p.port.Close() }
