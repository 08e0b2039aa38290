package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const (
	// FieldCount is the number of fixed 8-byte words in a packet,
	// including the leading character-size word. This count is a frozen
	// protocol constant: changing it is a breaking format change that
	// requires a synchronized update of every peer implementation.
	FieldCount = 7

	// BytesPerField is the width of each fixed word.
	BytesPerField = 8

	// HeaderSize is the size of the fixed portion of a packet.
	HeaderSize = FieldCount * BytesPerField
)

// Fixed word offsets within a packet.
const (
	offCharSize    = 0 * BytesPerField
	offTimestamp   = 1 * BytesPerField
	offType        = 2 * BytesPerField
	offPhysicalKey = 3 * BytesPerField
	offLogicalKey  = 4 * BytesPerField
	offSynthesized = 5 * BytesPerField
	offDeviceType  = 6 * BytesPerField
)

// KeyEventCodec handles serialization and deserialization of key events.
// It is stateless and safe for concurrent use.
type KeyEventCodec struct{}

// NewKeyEventCodec creates a new key event codec instance.
func NewKeyEventCodec() *KeyEventCodec {
	return &KeyEventCodec{}
}

// Encode serializes a key event into its binary packet format.
// Format: [CharSize(8)][Timestamp(8)][Type(8)][PhysicalKey(8)][LogicalKey(8)][Synthesized(8)][DeviceType(8)][Character]
// All words little-endian; the character segment is raw UTF-8 with no
// terminator and is omitted entirely when there is no character.
func (c *KeyEventCodec) Encode(event *KeyEvent) ([]byte, error) {
	if !event.Type.valid() {
		return nil, fmt.Errorf("encode event type %d: %w", uint64(event.Type), ErrInvalidEnumValue)
	}
	if !event.DeviceType.valid() {
		return nil, fmt.Errorf("encode device type %d: %w", uint64(event.DeviceType), ErrInvalidEnumValue)
	}
	if !event.characterValid() {
		return nil, fmt.Errorf("encode character: %w", ErrInvalidUTF8)
	}

	charSize := event.characterSize()
	buf := make([]byte, HeaderSize+charSize)

	binary.LittleEndian.PutUint64(buf[offCharSize:], uint64(charSize))
	binary.LittleEndian.PutUint64(buf[offTimestamp:], uint64(event.Timestamp))
	binary.LittleEndian.PutUint64(buf[offType:], uint64(event.Type))
	binary.LittleEndian.PutUint64(buf[offPhysicalKey:], event.PhysicalKey)
	binary.LittleEndian.PutUint64(buf[offLogicalKey:], event.LogicalKey)
	var synthesized uint64
	if event.Synthesized {
		synthesized = 1
	}
	binary.LittleEndian.PutUint64(buf[offSynthesized:], synthesized)
	binary.LittleEndian.PutUint64(buf[offDeviceType:], uint64(event.DeviceType))
	if charSize > 0 {
		copy(buf[HeaderSize:], *event.Character)
	}

	return buf, nil
}

// Decode deserializes a binary packet into a key event.
//
// Decode is all-or-nothing: any structural problem (short buffer,
// trailing-length mismatch, unmapped enum word, malformed UTF-8) returns
// an error wrapping one of the package sentinel errors and no event.
func (c *KeyEventCodec) Decode(data []byte) (*KeyEvent, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("packet is %d bytes, fixed header needs %d: %w",
			len(data), HeaderSize, ErrTruncatedBuffer)
	}

	charSize := binary.LittleEndian.Uint64(data[offCharSize:])
	if remaining := uint64(len(data) - HeaderSize); remaining != charSize {
		return nil, fmt.Errorf("declared character length %d, %d trailing bytes present: %w",
			charSize, remaining, ErrTruncatedBuffer)
	}

	eventType, err := EventTypeFromWire(binary.LittleEndian.Uint64(data[offType:]))
	if err != nil {
		return nil, err
	}
	deviceType, err := DeviceTypeFromWire(binary.LittleEndian.Uint64(data[offDeviceType:]))
	if err != nil {
		return nil, err
	}

	event := &KeyEvent{
		Timestamp:   int64(binary.LittleEndian.Uint64(data[offTimestamp:])),
		Type:        eventType,
		PhysicalKey: binary.LittleEndian.Uint64(data[offPhysicalKey:]),
		LogicalKey:  binary.LittleEndian.Uint64(data[offLogicalKey:]),
		// Any nonzero word is true; producers are known to emit
		// sentinel values other than 1.
		Synthesized: binary.LittleEndian.Uint64(data[offSynthesized:]) != 0,
		DeviceType:  deviceType,
	}

	if charSize > 0 {
		charBytes := data[HeaderSize:]
		if !utf8.Valid(charBytes) {
			return nil, fmt.Errorf("character segment: %w", ErrInvalidUTF8)
		}
		character := string(charBytes)
		event.Character = &character
	}

	return event, nil
}
