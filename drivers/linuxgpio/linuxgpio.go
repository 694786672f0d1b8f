//go:build linux

// Package linuxgpio backs the wiring GPIO driver with the Linux GPIO
// character device via go-gpiocdev.
package linuxgpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/zap"

	"gowiring/wiring"
)

// Config selects the GPIO chip and line consumer label.
type Config struct {
	// Chip is the character device name, e.g. "gpiochip0".
	Chip string

	// Consumer is the label attached to requested lines. Defaults to
	// "gowiring".
	Consumer string

	// Logger receives line lifecycle diagnostics. Optional.
	Logger *zap.SugaredLogger
}

// Driver maps wiring pin numbers directly to line offsets on a single
// GPIO chip.
type Driver struct {
	mu       sync.Mutex
	cfg      Config
	log      *zap.SugaredLogger
	chip     *gpiocdev.Chip
	lines    map[wiring.Pin]*gpiocdev.Line
	dirs     map[wiring.Pin]wiring.PinMode
}

// Open opens the configured GPIO chip.
func Open(cfg Config) (*Driver, error) {
	if cfg.Consumer == "" {
		cfg.Consumer = "gowiring"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	chip, err := gpiocdev.NewChip(cfg.Chip)
	if err != nil {
		return nil, fmt.Errorf("linuxgpio: open %s: %w", cfg.Chip, err)
	}
	return &Driver{
		cfg:   cfg,
		log:   log,
		chip:  chip,
		lines: make(map[wiring.Pin]*gpiocdev.Line),
		dirs:  make(map[wiring.Pin]wiring.PinMode),
	}, nil
}

// Register installs this driver as the process-wide GPIO driver.
func Register(d *Driver) {
	wiring.SetGPIODriver(d)
}

// Close releases all requested lines and the chip.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for pin, line := range d.lines {
		if err := line.Close(); err != nil {
			d.log.Warnw("line close failed", "pin", pin, "error", err)
		}
		delete(d.lines, pin)
	}
	return d.chip.Close()
}

// Acquire requests the line behind a pin. Already-held pins are left
// untouched.
func (d *Driver) Acquire(pin wiring.Pin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.lines[pin]; ok {
		return nil
	}
	line, err := d.chip.RequestLine(int(pin),
		gpiocdev.AsInput,
		gpiocdev.WithConsumer(d.cfg.Consumer))
	if err != nil {
		return fmt.Errorf("linuxgpio: request line %d: %w", pin, err)
	}
	d.lines[pin] = line
	d.dirs[pin] = wiring.Input
	d.log.Debugw("line acquired", "chip", d.cfg.Chip, "pin", pin)
	return nil
}

// SetDirection reconfigures a held line as input or output. Outputs
// start driven low.
func (d *Driver) SetDirection(pin wiring.Pin, dir wiring.PinMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, err := d.held(pin)
	if err != nil {
		return err
	}
	if d.dirs[pin] == dir {
		return nil
	}
	var opt gpiocdev.LineConfigOption
	if dir == wiring.Output {
		opt = gpiocdev.AsOutput(0)
	} else {
		opt = gpiocdev.AsInput
	}
	if err := line.Reconfigure(opt); err != nil {
		return fmt.Errorf("linuxgpio: reconfigure line %d: %w", pin, err)
	}
	d.dirs[pin] = dir
	return nil
}

// SetValue drives a held line.
func (d *Driver) SetValue(pin wiring.Pin, level wiring.Level) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, err := d.held(pin)
	if err != nil {
		return err
	}
	if err := line.SetValue(int(level)); err != nil {
		return fmt.Errorf("linuxgpio: set line %d: %w", pin, err)
	}
	return nil
}

// GetValue reads a held line.
func (d *Driver) GetValue(pin wiring.Pin) (wiring.Level, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	line, err := d.held(pin)
	if err != nil {
		return wiring.Low, err
	}
	v, err := line.Value()
	if err != nil {
		return wiring.Low, fmt.Errorf("linuxgpio: read line %d: %w", pin, err)
	}
	if v != 0 {
		return wiring.High, nil
	}
	return wiring.Low, nil
}

func (d *Driver) held(pin wiring.Pin) (*gpiocdev.Line, error) {
	line, ok := d.lines[pin]
	if !ok {
		return nil, fmt.Errorf("linuxgpio: line %d not acquired", pin)
	}
	return line, nil
}

var _ wiring.GPIODriver = (*Driver)(nil)
