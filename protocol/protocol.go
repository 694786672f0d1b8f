// Package protocol implements the framed wire protocol spoken between a
// host and serial pin-expander boards.
//
// Every exchange is one frame each way:
//
//	[len][seq|dest][payload...][crc16 hi][crc16 lo][sync]
//
// len counts the whole frame, seq carries a 4-bit rolling counter OR-ed
// with the destination bits, and the CRC covers everything before the
// trailer. Payloads are VLQ-encoded integers: a command or response
// identifier followed by its arguments.
package protocol

// Frame layout constants
const (
	FrameHeaderSize  = 2 // length + sequence
	FrameTrailerSize = 3 // CRC16 + sync
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64

	FramePositionLen = 0
	FramePositionSeq = 1
	FrameTrailerCRC  = 3
	FrameTrailerSync = 1

	FrameValueSync = 0x7E
	FrameDest      = 0x10
	FrameSeqMask   = 0x0F
)

// Command identifiers (host to expander)
const (
	CmdAcquire      uint32 = iota + 1 // acquire(pin)
	CmdSetDirection                   // set_direction(pin, dir)
	CmdSetValue                       // set_value(pin, level)
	CmdGetValue                       // get_value(pin)
	CmdADCEnable                      // adc_enable(channel)
	CmdADCDisable                     // adc_disable(channel)
	CmdADCStart                       // adc_start(reference)
	CmdADCStatus                      // adc_status()
	CmdADCRead                        // adc_read()
)

// Response identifiers (expander to host)
const (
	RespAck      uint32 = iota + 0x40 // ack()
	RespError                         // error(code)
	RespValue                         // value(level)
	RespStatus                        // status(ready)
	RespADCValue                      // adc_value(raw)
)
