// Package expander drives serial pin-expander boards that speak the
// gowiring link protocol, exposing them as wiring GPIO and ADC drivers.
package expander

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gowiring/protocol"
	"gowiring/serial"
	"gowiring/wiring"
)

var (
	// ErrNoResponse reports a link that went quiet mid-exchange.
	ErrNoResponse = errors.New("expander: no response from device")

	// ErrBadResponse reports a response identifier the host does not
	// understand.
	ErrBadResponse = errors.New("expander: unexpected response")
)

// DeviceError is a failure code reported by the expander firmware.
type DeviceError struct {
	Code uint32
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("expander: device error %d", e.Code)
}

// Config describes one expander board.
type Config struct {
	// FirstAnalogPin is the lowest pin number routed to the converter.
	FirstAnalogPin wiring.Pin

	// AnalogPins is the size of the analog-capable pin window.
	AnalogPins uint32

	// AnalogChannels is how many leading pins of the window map to real
	// 12-bit converter lines; the remainder are reserved.
	AnalogChannels uint32

	// Logger receives link-level diagnostics. Optional.
	Logger *zap.SugaredLogger
}

// Expander is a GPIODriver, ADCDriver and AnalogPinMap over one serial
// port. One command is in flight at a time; concurrent callers are
// serialized by an internal mutex.
type Expander struct {
	mu   sync.Mutex
	port serial.Port
	cfg  Config
	log  *zap.SugaredLogger
	seq  uint8
	rx   *protocol.FifoBuffer
	out  *protocol.ScratchOutput
}

// New wraps an open port. The caller keeps ownership of cfg.
func New(port serial.Port, cfg Config) *Expander {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Expander{
		port: port,
		cfg:  cfg,
		log:  log,
		rx:   protocol.NewFifoBuffer(512),
		out:  protocol.NewScratchOutput(),
	}
}

// Open dials the expander on a serial device path with the default
// port settings.
func Open(device string, cfg Config) (*Expander, error) {
	port, err := serial.Open(serial.DefaultConfig(device))
	if err != nil {
		return nil, err
	}
	return New(port, cfg), nil
}

// Register installs this expander as the process-wide GPIO driver, ADC
// driver and analog pin map.
func Register(e *Expander) {
	wiring.SetGPIODriver(e)
	wiring.SetADCDriver(e)
	wiring.SetAnalogPinMap(e)
}

// Close closes the underlying port.
func (e *Expander) Close() error {
	return e.port.Close()
}

// Acquire claims a pin on the board. The firmware treats repeated
// claims of the same pin as a no-op.
func (e *Expander) Acquire(pin wiring.Pin) error {
	return e.command(protocol.CmdAcquire, uint32(pin))
}

// SetDirection configures a pin as input or output.
func (e *Expander) SetDirection(pin wiring.Pin, dir wiring.PinMode) error {
	return e.command(protocol.CmdSetDirection, uint32(pin), uint32(dir))
}

// SetValue drives a pin level.
func (e *Expander) SetValue(pin wiring.Pin, level wiring.Level) error {
	return e.command(protocol.CmdSetValue, uint32(pin), uint32(level))
}

// GetValue reads a pin level.
func (e *Expander) GetValue(pin wiring.Pin) (wiring.Level, error) {
	v, err := e.query(protocol.CmdGetValue, protocol.RespValue, uint32(pin))
	if err != nil {
		return wiring.Low, err
	}
	if v != 0 {
		return wiring.High, nil
	}
	return wiring.Low, nil
}

// EnableChannel connects a converter channel.
func (e *Expander) EnableChannel(ch uint32) error {
	return e.command(protocol.CmdADCEnable, ch)
}

// DisableChannel disconnects a converter channel.
func (e *Expander) DisableChannel(ch uint32) error {
	return e.command(protocol.CmdADCDisable, ch)
}

// StartConversion kicks off a conversion, forwarding the process-wide
// analog reference so the board converts against the mode active at
// call time.
func (e *Expander) StartConversion() error {
	return e.command(protocol.CmdADCStart, uint32(wiring.ActiveAnalogReference()))
}

// ConversionReady polls the board's conversion status.
func (e *Expander) ConversionReady() (bool, error) {
	v, err := e.query(protocol.CmdADCStatus, protocol.RespStatus)
	return v != 0, err
}

// ReadLatestValue reads the most recent converted sample.
func (e *Expander) ReadLatestValue() (uint32, error) {
	return e.query(protocol.CmdADCRead, protocol.RespADCValue)
}

// AnalogPinRange returns the analog-capable pin window.
func (e *Expander) AnalogPinRange() (wiring.Pin, wiring.Pin) {
	if e.cfg.AnalogPins == 0 {
		// Empty window: a range no pin can satisfy.
		return 1, 0
	}
	return e.cfg.FirstAnalogPin, e.cfg.FirstAnalogPin + wiring.Pin(e.cfg.AnalogPins) - 1
}

// ChannelFor maps an analog-capable pin to its converter channel. Pins
// past the configured channel count sit on reserved lines.
func (e *Expander) ChannelFor(pin wiring.Pin) wiring.Channel {
	idx := uint32(pin - e.cfg.FirstAnalogPin)
	if idx < e.cfg.AnalogChannels {
		return wiring.Channel{Number: idx, Class: wiring.Channel12Bit}
	}
	return wiring.Channel{Number: idx, Class: wiring.ChannelReserved}
}

// command sends a command that answers with a plain ack.
func (e *Expander) command(cmd uint32, args ...uint32) error {
	payload, err := e.roundTrip(cmd, args...)
	if err != nil {
		return err
	}
	id, rest, err := parseResponse(payload)
	if err != nil {
		return err
	}
	switch id {
	case protocol.RespAck:
		return nil
	case protocol.RespError:
		return decodeDeviceError(&rest)
	default:
		return fmt.Errorf("%w: id %#x", ErrBadResponse, id)
	}
}

// query sends a command that answers with a single-value response.
func (e *Expander) query(cmd uint32, want uint32, args ...uint32) (uint32, error) {
	payload, err := e.roundTrip(cmd, args...)
	if err != nil {
		return 0, err
	}
	id, rest, err := parseResponse(payload)
	if err != nil {
		return 0, err
	}
	switch id {
	case want:
		v, err := protocol.DecodeVLQUint(&rest)
		if err != nil {
			return 0, fmt.Errorf("expander: %w", err)
		}
		return v, nil
	case protocol.RespError:
		return 0, decodeDeviceError(&rest)
	default:
		return 0, fmt.Errorf("%w: id %#x", ErrBadResponse, id)
	}
}

// roundTrip sends one command frame and blocks for the response payload.
func (e *Expander) roundTrip(cmd uint32, args ...uint32) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.out.Reset()
	protocol.EncodeVLQUint(e.out, cmd)
	for _, a := range args {
		protocol.EncodeVLQUint(e.out, a)
	}

	e.seq = (e.seq + 1) & protocol.FrameSeqMask
	frame, err := protocol.EncodeFrame(e.seq, e.out.Result())
	if err != nil {
		return nil, err
	}
	if _, err := e.port.Write(frame); err != nil {
		return nil, fmt.Errorf("expander: write: %w", err)
	}
	return e.readResponse()
}

// readResponse accumulates serial bytes until one well-formed frame
// parses out of them, resynchronizing on the sync byte after garbage.
func (e *Expander) readResponse() ([]byte, error) {
	var chunk [protocol.FrameLengthMax]byte
	for {
		data := e.rx.Data()
		payload, _, n, err := protocol.DecodeFrame(data)
		switch {
		case err == nil:
			result := make([]byte, len(payload))
			copy(result, payload)
			e.rx.Pop(n)
			return result, nil
		case errors.Is(err, protocol.ErrFrameCorrupt):
			e.resync(data)
		default: // incomplete, pull more bytes off the wire
			n, rerr := e.port.Read(chunk[:])
			if n > 0 {
				e.rx.Write(chunk[:n])
			}
			if rerr != nil {
				return nil, fmt.Errorf("expander: read: %w", rerr)
			}
			if n == 0 {
				// Port timed out with nothing buffered.
				return nil, ErrNoResponse
			}
		}
	}
}

// resync drops buffered bytes through the next sync byte.
func (e *Expander) resync(data []byte) {
	e.log.Debugw("dropping corrupt frame bytes", "buffered", len(data))
	for i := 1; i < len(data); i++ {
		if data[i] == protocol.FrameValueSync {
			e.rx.Pop(i + 1)
			return
		}
	}
	e.rx.Pop(len(data))
}

func parseResponse(payload []byte) (uint32, []byte, error) {
	rest := payload
	id, err := protocol.DecodeVLQUint(&rest)
	if err != nil {
		return 0, nil, fmt.Errorf("expander: %w", err)
	}
	return id, rest, nil
}

func decodeDeviceError(rest *[]byte) error {
	code, err := protocol.DecodeVLQUint(rest)
	if err != nil {
		return fmt.Errorf("expander: %w", err)
	}
	return &DeviceError{Code: code}
}

var (
	_ wiring.GPIODriver   = (*Expander)(nil)
	_ wiring.ADCDriver    = (*Expander)(nil)
	_ wiring.AnalogPinMap = (*Expander)(nil)
)
