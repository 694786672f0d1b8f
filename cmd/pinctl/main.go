//go:build linux

// pinctl pokes pins through the wiring layer from the command line.
//
// Usage:
//
//	pinctl [flags] mode <pin> <input|output>
//	pinctl [flags] write <pin> <high|low|1|0>
//	pinctl [flags] read <pin>
//	pinctl [flags] aread <pin>
//	pinctl [flags] shiftin <data-pin> <clock-pin> <msb|lsb>
//	pinctl [flags] shiftout <data-pin> <clock-pin> <msb|lsb> <value>
//	pinctl [flags] micros
//	pinctl [flags] watch <pin> [interval-ms]
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"gowiring/drivers/expander"
	"gowiring/drivers/linuxgpio"
	"gowiring/drivers/sysclock"
	"gowiring/wiring"
)

var (
	backend        = flag.String("backend", "gpiochip", "Pin backend: gpiochip or expander")
	chip           = flag.String("chip", "gpiochip0", "GPIO character device (gpiochip backend)")
	device         = flag.String("device", "/dev/ttyACM0", "Serial device path (expander backend)")
	analogFirst    = flag.Uint("analog-first", 54, "First analog-capable pin (expander backend)")
	analogPins     = flag.Uint("analog-pins", 12, "Analog-capable pin count (expander backend)")
	analogChannels = flag.Uint("analog-channels", 6, "Converter channel count (expander backend)")
	verbose        = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := zap.NewNop().Sugar()
	if *verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: logger setup: %v\n", err)
			os.Exit(1)
		}
		defer zl.Sync()
		log = zl.Sugar()
		wiring.SetDebugWriter(func(msg string) { log.Debug(msg) })
	}

	sysclock.Register()

	switch *backend {
	case "gpiochip":
		drv, err := linuxgpio.Open(linuxgpio.Config{
			Chip:     *chip,
			Consumer: "pinctl",
			Logger:   log,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer drv.Close()
		linuxgpio.Register(drv)

	case "expander":
		exp, err := expander.Open(*device, expander.Config{
			FirstAnalogPin: wiring.Pin(*analogFirst),
			AnalogPins:     uint32(*analogPins),
			AnalogChannels: uint32(*analogChannels),
			Logger:         log,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer exp.Close()
		expander.Register(exp)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", *backend)
		os.Exit(2)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "mode":
		if len(args) != 2 {
			return fmt.Errorf("mode needs <pin> <input|output>")
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		mode, err := parseMode(args[1])
		if err != nil {
			return err
		}
		return wiring.SetPinMode(pin, mode)

	case "write":
		if len(args) != 2 {
			return fmt.Errorf("write needs <pin> <high|low|1|0>")
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		level, err := parseLevel(args[1])
		if err != nil {
			return err
		}
		return wiring.DigitalWrite(pin, level)

	case "read":
		if len(args) != 1 {
			return fmt.Errorf("read needs <pin>")
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		level, err := wiring.DigitalRead(pin)
		if err != nil {
			return err
		}
		fmt.Println(uint8(level))
		return nil

	case "aread":
		if len(args) != 1 {
			return fmt.Errorf("aread needs <pin>")
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		v, err := wiring.AnalogRead(pin)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil

	case "shiftin":
		if len(args) != 3 {
			return fmt.Errorf("shiftin needs <data-pin> <clock-pin> <msb|lsb>")
		}
		dataPin, clockPin, order, err := parseShiftArgs(args)
		if err != nil {
			return err
		}
		fmt.Printf("%#02x\n", wiring.ShiftIn(dataPin, clockPin, order))
		return nil

	case "shiftout":
		if len(args) != 4 {
			return fmt.Errorf("shiftout needs <data-pin> <clock-pin> <msb|lsb> <value>")
		}
		dataPin, clockPin, order, err := parseShiftArgs(args[:3])
		if err != nil {
			return err
		}
		value, err := strconv.ParseUint(args[3], 0, 8)
		if err != nil {
			return fmt.Errorf("bad value %q: %w", args[3], err)
		}
		wiring.ShiftOut(dataPin, clockPin, order, uint8(value))
		return nil

	case "micros":
		us, err := wiring.Micros()
		if err != nil {
			return err
		}
		fmt.Println(us)
		return nil

	case "watch":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("watch needs <pin> [interval-ms]")
		}
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		interval := uint64(100)
		if len(args) == 2 {
			interval, err = strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("bad interval %q: %w", args[1], err)
			}
		}
		return watch(pin, uint32(interval))
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// watch polls a pin and prints level transitions until interrupted.
func watch(pin wiring.Pin, intervalMs uint32) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	last, err := wiring.DigitalRead(pin)
	if err != nil {
		return err
	}
	fmt.Printf("pin %d: %d\n", pin, uint8(last))

	for {
		select {
		case <-stop:
			return nil
		default:
		}
		wiring.Delay(intervalMs)
		level, err := wiring.DigitalRead(pin)
		if err != nil {
			return err
		}
		if level != last {
			ms, err := wiring.Millis()
			if err != nil {
				return err
			}
			fmt.Printf("pin %d: %d (at %d ms)\n", pin, uint8(level), ms)
			last = level
		}
	}
}

func parsePin(s string) (wiring.Pin, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad pin %q: %w", s, err)
	}
	return wiring.Pin(n), nil
}

func parseMode(s string) (wiring.PinMode, error) {
	switch s {
	case "input", "in":
		return wiring.Input, nil
	case "output", "out":
		return wiring.Output, nil
	}
	return 0, fmt.Errorf("bad mode %q (want input or output)", s)
}

func parseLevel(s string) (wiring.Level, error) {
	switch s {
	case "high", "1":
		return wiring.High, nil
	case "low", "0":
		return wiring.Low, nil
	}
	return 0, fmt.Errorf("bad level %q (want high, low, 1 or 0)", s)
}

func parseShiftArgs(args []string) (dataPin, clockPin wiring.Pin, order wiring.BitOrder, err error) {
	if dataPin, err = parsePin(args[0]); err != nil {
		return
	}
	if clockPin, err = parsePin(args[1]); err != nil {
		return
	}
	switch args[2] {
	case "msb":
		order = wiring.MSBFirst
	case "lsb":
		order = wiring.LSBFirst
	default:
		err = fmt.Errorf("bad bit order %q (want msb or lsb)", args[2])
	}
	return
}
