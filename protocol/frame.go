package protocol

import "errors"

var (
	// ErrFrameTooLarge reports a payload that exceeds the frame limit.
	ErrFrameTooLarge = errors.New("protocol: payload exceeds frame limit")

	// ErrFrameIncomplete reports that more bytes are needed before a
	// frame can be parsed.
	ErrFrameIncomplete = errors.New("protocol: incomplete frame")

	// ErrFrameCorrupt reports a malformed frame; the reader should
	// discard bytes up to the next sync byte and retry.
	ErrFrameCorrupt = errors.New("protocol: corrupt frame")
)

// EncodeFrame wraps a payload in the link framing: length, sequence
// with destination bits, payload, CRC16 and trailing sync byte.
func EncodeFrame(seq uint8, payload []byte) ([]byte, error) {
	total := len(payload) + FrameLengthMin
	if total > FrameLengthMax {
		return nil, ErrFrameTooLarge
	}

	frame := make([]byte, 0, total)
	frame = append(frame, byte(total), FrameDest|(seq&FrameSeqMask))
	frame = append(frame, payload...)

	crc := CRC16(frame)
	frame = append(frame, byte(crc>>8), byte(crc), FrameValueSync)
	return frame, nil
}

// DecodeFrame parses one frame from the front of buf. On success it
// returns the payload (aliasing buf), the rolling sequence number and
// the total frame length consumed.
//
// ErrFrameIncomplete means buf may still grow into a valid frame;
// ErrFrameCorrupt means the front of buf can never become one.
func DecodeFrame(buf []byte) (payload []byte, seq uint8, n int, err error) {
	if len(buf) < FrameLengthMin {
		return nil, 0, 0, ErrFrameIncomplete
	}

	frameLen := int(buf[FramePositionLen])
	if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
		return nil, 0, 0, ErrFrameCorrupt
	}

	seqByte := buf[FramePositionSeq]
	if seqByte&^uint8(FrameSeqMask) != FrameDest {
		return nil, 0, 0, ErrFrameCorrupt
	}

	if len(buf) < frameLen {
		return nil, 0, 0, ErrFrameIncomplete
	}

	if buf[frameLen-FrameTrailerSync] != FrameValueSync {
		return nil, 0, 0, ErrFrameCorrupt
	}

	wantCRC := uint16(buf[frameLen-FrameTrailerCRC])<<8 |
		uint16(buf[frameLen-FrameTrailerCRC+1])
	if CRC16(buf[:frameLen-FrameTrailerSize]) != wantCRC {
		return nil, 0, 0, ErrFrameCorrupt
	}

	return buf[FrameHeaderSize : frameLen-FrameTrailerSize],
		seqByte & FrameSeqMask, frameLen, nil
}
