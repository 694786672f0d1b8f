package wiring

import (
	"errors"
	"testing"
)

// shiftDevice emulates an external shift register wired to a data pin
// and a clock pin. On each rising clock edge it either latches the
// current data level (capture mode) or presents the next playback level
// on the data line (playback mode).
type shiftDevice struct {
	dataPin, clockPin Pin
	levels            map[Pin]Level

	captured []Level // data levels latched on rising edges
	playback []Level // levels presented on rising edges, nil for capture mode

	risingEdges  int
	fallingEdges int
	samples      int
	samplesHigh  int // samples taken while the clock was high
}

func newShiftDevice(dataPin, clockPin Pin, playback []Level) *shiftDevice {
	return &shiftDevice{
		dataPin:  dataPin,
		clockPin: clockPin,
		levels:   make(map[Pin]Level),
		playback: playback,
	}
}

func (d *shiftDevice) Acquire(Pin) error { return nil }

func (d *shiftDevice) SetDirection(Pin, PinMode) error { return nil }

func (d *shiftDevice) SetValue(pin Pin, level Level) error {
	if pin == d.clockPin && d.levels[pin] != level {
		if level == High {
			d.risingEdges++
			if d.playback != nil {
				if d.risingEdges <= len(d.playback) {
					d.levels[d.dataPin] = d.playback[d.risingEdges-1]
				}
			} else {
				d.captured = append(d.captured, d.levels[d.dataPin])
			}
		} else {
			d.fallingEdges++
		}
	}
	d.levels[pin] = level
	return nil
}

func (d *shiftDevice) GetValue(pin Pin) (Level, error) {
	if pin == d.dataPin {
		d.samples++
		if d.levels[d.clockPin] == High {
			d.samplesHigh++
		}
	}
	return d.levels[pin], nil
}

func TestShiftLoopbackAllBytes(t *testing.T) {
	const dataPin, clockPin = 11, 12

	for _, order := range []BitOrder{LSBFirst, MSBFirst} {
		for v := 0; v < 256; v++ {
			tx := newShiftDevice(dataPin, clockPin, nil)
			SetGPIODriver(tx)
			ShiftOut(dataPin, clockPin, order, uint8(v))

			if len(tx.captured) != 8 {
				t.Fatalf("order %d value %#x: captured %d bits, expected 8",
					order, v, len(tx.captured))
			}

			rx := newShiftDevice(dataPin, clockPin, tx.captured)
			SetGPIODriver(rx)
			got := ShiftIn(dataPin, clockPin, order)

			if got != uint8(v) {
				t.Errorf("order %d: shifted out %#x, shifted in %#x", order, v, got)
			}
		}
	}
}

func TestShiftOutBitSequence(t *testing.T) {
	const dataPin, clockPin = 3, 4

	// 0xA5 = 1010_0101
	testCases := []struct {
		order BitOrder
		want  []Level
	}{
		{LSBFirst, []Level{High, Low, High, Low, Low, High, Low, High}},
		{MSBFirst, []Level{High, Low, High, Low, Low, High, Low, High}},
	}
	// 0xA5 happens to be a palindrome; use an asymmetric byte too.
	asym := []struct {
		order BitOrder
		want  []Level
	}{
		// 0x0B = 0000_1011
		{LSBFirst, []Level{High, High, Low, High, Low, Low, Low, Low}},
		{MSBFirst, []Level{Low, Low, Low, Low, High, Low, High, High}},
	}

	for _, tc := range testCases {
		dev := newShiftDevice(dataPin, clockPin, nil)
		SetGPIODriver(dev)
		ShiftOut(dataPin, clockPin, tc.order, 0xA5)
		for i, want := range tc.want {
			if dev.captured[i] != want {
				t.Errorf("0xA5 order %d bit %d: expected %d, got %d",
					tc.order, i, want, dev.captured[i])
			}
		}
	}
	for _, tc := range asym {
		dev := newShiftDevice(dataPin, clockPin, nil)
		SetGPIODriver(dev)
		ShiftOut(dataPin, clockPin, tc.order, 0x0B)
		for i, want := range tc.want {
			if dev.captured[i] != want {
				t.Errorf("0x0B order %d bit %d: expected %d, got %d",
					tc.order, i, want, dev.captured[i])
			}
		}
	}
}

func TestShiftInSamplesBetweenClockEdges(t *testing.T) {
	const dataPin, clockPin = 7, 8

	playback := []Level{High, Low, High, High, Low, Low, High, Low}
	dev := newShiftDevice(dataPin, clockPin, playback)
	SetGPIODriver(dev)

	ShiftIn(dataPin, clockPin, LSBFirst)

	if dev.samples != 8 {
		t.Errorf("expected 8 data samples, got %d", dev.samples)
	}
	if dev.samplesHigh != 8 {
		t.Errorf("expected every sample between the clock edges, %d of %d were",
			dev.samplesHigh, dev.samples)
	}
	if dev.risingEdges != 8 || dev.fallingEdges != 8 {
		t.Errorf("expected 8 full clock pulses, got %d rising / %d falling",
			dev.risingEdges, dev.fallingEdges)
	}
	if dev.levels[clockPin] != Low {
		t.Error("clock pin left high after ShiftIn")
	}
}

// errorGPIO fails every data read; levels still report Low.
type errorGPIO struct {
	fakeGPIO
}

func (e *errorGPIO) GetValue(Pin) (Level, error) {
	return Low, errors.New("transient read fault")
}

func TestShiftInAbsorbsReadErrors(t *testing.T) {
	dev := &errorGPIO{fakeGPIO: *newFakeGPIO()}
	SetGPIODriver(dev)

	// Read faults fold into Low bits; the caller sees a zero byte, not
	// an error.
	if got := ShiftIn(1, 2, LSBFirst); got != 0 {
		t.Errorf("expected read faults to produce 0, got %#x", got)
	}
}
