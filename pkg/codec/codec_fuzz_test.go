//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf8"
)

// FuzzKeyEventCodec_RoundTrip tests encode/decode round-trip with random field values
func FuzzKeyEventCodec_RoundTrip(f *testing.F) {
	codec := NewKeyEventCodec()

	// Add seed corpus
	f.Add(int64(0), uint64(0), uint64(0), uint64(0), false, uint64(0), "")
	f.Add(int64(1000), uint64(0), uint64(0x70), uint64(0x61), false, uint64(0), "a")
	f.Add(int64(-1), uint64(2), uint64(0xFFFFFFFFFFFFFFFF), uint64(1), true, uint64(4), "🔑")

	f.Fuzz(func(t *testing.T, timestamp int64, typeWord, physical, logical uint64, synthesized bool, deviceWord uint64, character string) {
		eventType, err := EventTypeFromWire(typeWord)
		if err != nil {
			t.Skip("type word outside variants")
		}
		deviceType, err := DeviceTypeFromWire(deviceWord)
		if err != nil {
			t.Skip("device word outside variants")
		}
		if !utf8.ValidString(character) {
			t.Skip("fuzzer produced invalid UTF-8")
		}
		if len(character) > 100000 {
			t.Skip("character too large for fuzz test")
		}

		event := KeyEvent{
			Timestamp:   timestamp,
			Type:        eventType,
			PhysicalKey: physical,
			LogicalKey:  logical,
			Synthesized: synthesized,
			DeviceType:  deviceType,
		}
		if character != "" {
			event.Character = &character
		}

		packet, err := codec.Encode(&event)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if len(packet) != event.EncodedSize() {
			t.Errorf("Size mismatch: got %d, want %d", len(packet), event.EncodedSize())
		}

		decoded, err := codec.Decode(packet)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !decoded.Equal(&event) {
			t.Errorf("Round-trip mismatch: got %+v, want %+v", decoded, event)
		}
	})
}

// FuzzKeyEventCodec_MalformedData tests that arbitrary bytes never panic the decoder
func FuzzKeyEventCodec_MalformedData(f *testing.F) {
	codec := NewKeyEventCodec()

	// Add seed corpus of malformed data
	f.Add([]byte{})
	f.Add([]byte{0x01})
	f.Add(make([]byte, HeaderSize-1))
	f.Add(make([]byte, HeaderSize))
	f.Add(func() []byte {
		buf := make([]byte, HeaderSize+3)
		binary.LittleEndian.PutUint64(buf[0:], 5)
		return buf
	}())

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000000 {
			t.Skip("input too large for fuzz test")
		}

		event, err := codec.Decode(data)
		if err != nil {
			// Rejection is expected for most random input; the decoder
			// must never return a partial event alongside an error.
			if event != nil {
				t.Error("Decode returned both an event and an error")
			}
			return
		}

		// If decode succeeded, re-encoding must reproduce the input.
		packet, err := codec.Encode(event)
		if err != nil {
			t.Fatalf("Re-encode of decoded event failed: %v", err)
		}
		// The synthesized word is decoded leniently, so compare with it
		// normalized rather than byte-for-byte.
		normalized := make([]byte, len(data))
		copy(normalized, data)
		var synthesized uint64
		if binary.LittleEndian.Uint64(data[40:]) != 0 {
			synthesized = 1
		}
		binary.LittleEndian.PutUint64(normalized[40:], synthesized)
		if !bytes.Equal(packet, normalized) {
			t.Errorf("Re-encode mismatch: got %x, want %x", packet, normalized)
		}
	})
}
