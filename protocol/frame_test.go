package protocol

import (
	"errors"
	"testing"
)

func buildPayload(values ...uint32) []byte {
	out := NewScratchOutput()
	for _, v := range values {
		EncodeVLQUint(out, v)
	}
	return out.Result()
}

func TestFrameRoundTrip(t *testing.T) {
	payload := buildPayload(CmdSetValue, 13, 1)

	frame, err := EncodeFrame(5, payload)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if len(frame) != len(payload)+FrameLengthMin {
		t.Errorf("Frame length %d, expected %d", len(frame), len(payload)+FrameLengthMin)
	}

	decoded, seq, n, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if seq != 5 {
		t.Errorf("Expected sequence 5, got %d", seq)
	}
	if n != len(frame) {
		t.Errorf("Expected %d bytes consumed, got %d", len(frame), n)
	}
	if len(decoded) != len(payload) {
		t.Fatalf("Payload length mismatch: expected %d, got %d", len(payload), len(decoded))
	}
	for i := range payload {
		if decoded[i] != payload[i] {
			t.Errorf("Payload byte %d: expected %02X, got %02X", i, payload[i], decoded[i])
		}
	}
}

func TestFrameSequenceWraps(t *testing.T) {
	frame, err := EncodeFrame(0x35, buildPayload(CmdADCStatus))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	// Only the low four sequence bits travel on the wire.
	_, seq, _, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if seq != 0x05 {
		t.Errorf("Expected masked sequence 0x05, got %#x", seq)
	}
}

func TestEncodeFrameRejectsOversizedPayload(t *testing.T) {
	payload := make([]byte, FrameLengthMax)
	if _, err := EncodeFrame(0, payload); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge, got %v", err)
	}
}

func TestDecodeFrameIncomplete(t *testing.T) {
	frame, _ := EncodeFrame(1, buildPayload(CmdGetValue, 7))

	for cut := 1; cut < len(frame); cut++ {
		if _, _, _, err := DecodeFrame(frame[:cut]); !errors.Is(err, ErrFrameIncomplete) {
			t.Errorf("Truncated to %d bytes: expected ErrFrameIncomplete, got %v", cut, err)
		}
	}
}

func TestDecodeFrameCorruption(t *testing.T) {
	good, _ := EncodeFrame(1, buildPayload(RespAck))

	corrupt := func(mutate func([]byte)) []byte {
		frame := append([]byte{}, good...)
		mutate(frame)
		return frame
	}

	testCases := []struct {
		name  string
		frame []byte
	}{
		{"bad length", corrupt(func(f []byte) { f[FramePositionLen] = 0xFF })},
		{"bad destination", corrupt(func(f []byte) { f[FramePositionSeq] = 0x71 })},
		{"bad sync", corrupt(func(f []byte) { f[len(f)-1] = 0x00 })},
		{"bad crc", corrupt(func(f []byte) { f[len(f)-2] ^= 0xFF })},
	}

	for _, tc := range testCases {
		if _, _, _, err := DecodeFrame(tc.frame); !errors.Is(err, ErrFrameCorrupt) {
			t.Errorf("%s: expected ErrFrameCorrupt, got %v", tc.name, err)
		}
	}
}
