// Advanced I/O: bit-banged serial shift over two digital pins.
package wiring

// ShiftIn shifts in a byte of data one bit at a time, starting from
// either the most or least significant bit. For each bit the clock pin
// is pulled high, the next bit is sampled from the data line, and the
// clock pin is taken low.
//
// A failed read on the data pin is indistinguishable from a genuine Low
// level: the driver error is absorbed into the sampled bit.
func ShiftIn(dataPin, clockPin Pin, order BitOrder) uint8 {
	var value uint8
	for i := uint(0); i < 8; i++ {
		_ = DigitalWrite(clockPin, High)
		level, _ := DigitalRead(dataPin)
		if level == High {
			if order == LSBFirst {
				value |= 1 << i
			} else {
				value |= 1 << (7 - i)
			}
		}
		_ = DigitalWrite(clockPin, Low)
	}
	return value
}

// ShiftOut shifts a byte out to a clocked destination. Each bit is
// written in turn to the data pin, after which the clock pin is pulsed
// (taken high, then low) to indicate that the bit is available. The
// data level is set before the pulse and held through it.
func ShiftOut(dataPin, clockPin Pin, order BitOrder, value uint8) {
	for i := uint(0); i < 8; i++ {
		var bit uint8
		if order == LSBFirst {
			bit = (value >> i) & 1
		} else {
			bit = (value >> (7 - i)) & 1
		}
		level := Low
		if bit != 0 {
			level = High
		}
		_ = DigitalWrite(dataPin, level)
		_ = DigitalWrite(clockPin, High)
		_ = DigitalWrite(clockPin, Low)
	}
}
