package wiring

import (
	"errors"
	"fmt"
	"testing"
)

// fakeGPIO is a recording GPIODriver for tests.
type fakeGPIO struct {
	calls    []string
	levels   map[Pin]Level
	dirs     map[Pin]PinMode
	acquired map[Pin]int
	readErr  error
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:   make(map[Pin]Level),
		dirs:     make(map[Pin]PinMode),
		acquired: make(map[Pin]int),
	}
}

func (f *fakeGPIO) Acquire(pin Pin) error {
	f.calls = append(f.calls, fmt.Sprintf("acquire %d", pin))
	f.acquired[pin]++
	return nil
}

func (f *fakeGPIO) SetDirection(pin Pin, dir PinMode) error {
	f.calls = append(f.calls, fmt.Sprintf("dir %d %d", pin, dir))
	f.dirs[pin] = dir
	return nil
}

func (f *fakeGPIO) SetValue(pin Pin, level Level) error {
	f.calls = append(f.calls, fmt.Sprintf("set %d %d", pin, level))
	f.levels[pin] = level
	return nil
}

func (f *fakeGPIO) GetValue(pin Pin) (Level, error) {
	f.calls = append(f.calls, fmt.Sprintf("get %d", pin))
	if f.readErr != nil {
		return Low, f.readErr
	}
	return f.levels[pin], nil
}

func TestSetPinModeRejectsInvalidMode(t *testing.T) {
	fake := newFakeGPIO()
	SetGPIODriver(fake)

	var logged string
	SetDebugWriter(func(msg string) { logged = msg })
	defer SetDebugWriter(nil)

	err := SetPinMode(4, PinMode(7))
	if !errors.Is(err, ErrInvalidPinMode) {
		t.Fatalf("expected ErrInvalidPinMode, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("invalid mode touched the driver: %v", fake.calls)
	}
	if logged == "" {
		t.Error("invalid mode was not reported to the diagnostic sink")
	}
}

func TestSetPinModeAcquiresThenSetsDirection(t *testing.T) {
	fake := newFakeGPIO()
	SetGPIODriver(fake)

	if err := SetPinMode(13, Output); err != nil {
		t.Fatalf("SetPinMode(Output) failed: %v", err)
	}
	want := []string{"acquire 13", "dir 13 1"}
	if len(fake.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, fake.calls)
	}
	for i, call := range want {
		if fake.calls[i] != call {
			t.Errorf("call %d: expected %q, got %q", i, call, fake.calls[i])
		}
	}
	if fake.dirs[13] != Output {
		t.Errorf("expected pin 13 configured as Output, got %d", fake.dirs[13])
	}

	// Reconfiguring is safe: acquisition is idempotent, direction follows.
	if err := SetPinMode(13, Input); err != nil {
		t.Fatalf("SetPinMode(Input) failed: %v", err)
	}
	if fake.acquired[13] != 2 {
		t.Errorf("expected 2 acquire calls, got %d", fake.acquired[13])
	}
	if fake.dirs[13] != Input {
		t.Errorf("expected pin 13 reconfigured as Input, got %d", fake.dirs[13])
	}
}

func TestDigitalWriteForwardsUnconditionally(t *testing.T) {
	fake := newFakeGPIO()
	SetGPIODriver(fake)

	// No SetPinMode first: write goes straight to the driver.
	if err := DigitalWrite(9, High); err != nil {
		t.Fatalf("DigitalWrite failed: %v", err)
	}
	if fake.levels[9] != High {
		t.Errorf("expected pin 9 high, got %d", fake.levels[9])
	}
	if err := DigitalWrite(9, Low); err != nil {
		t.Fatalf("DigitalWrite failed: %v", err)
	}
	if fake.levels[9] != Low {
		t.Errorf("expected pin 9 low, got %d", fake.levels[9])
	}
}

func TestDigitalReadPropagatesDriverError(t *testing.T) {
	fake := newFakeGPIO()
	readErr := errors.New("pin not exported")
	fake.readErr = readErr
	SetGPIODriver(fake)

	if _, err := DigitalRead(2); !errors.Is(err, readErr) {
		t.Errorf("expected driver error to propagate, got %v", err)
	}
}

func TestDigitalReadReturnsLevel(t *testing.T) {
	fake := newFakeGPIO()
	SetGPIODriver(fake)
	fake.levels[5] = High

	level, err := DigitalRead(5)
	if err != nil {
		t.Fatalf("DigitalRead failed: %v", err)
	}
	if level != High {
		t.Errorf("expected High, got %d", level)
	}
}
