package codec

import (
	"fmt"
	"unicode/utf8"
)

// EventType is the action kind of a key event.
type EventType uint64

const (
	EventTypeDown   EventType = 0 // key pressed
	EventTypeUp     EventType = 1 // key released
	EventTypeRepeat EventType = 2 // key held, auto-repeat
)

// DeviceType identifies the class of device that produced a key event.
type DeviceType uint64

const (
	DeviceTypeKeyboard       DeviceType = 0
	DeviceTypeDirectionalPad DeviceType = 1
	DeviceTypeGamepad        DeviceType = 2
	DeviceTypeJoystick       DeviceType = 3
	DeviceTypeHdmi           DeviceType = 4
)

// KeyEvent represents a single key event with already-resolved key codes.
// It is a plain value; the codec neither retains nor mutates it.
type KeyEvent struct {
	Timestamp   int64      // Event time, unit defined by the producer (typically microseconds)
	Type        EventType  // Down, Up or Repeat
	PhysicalKey uint64     // Code of the physical key
	LogicalKey  uint64     // Code of the logical (layout-mapped) key
	Synthesized bool       // True if generated programmatically rather than by hardware
	DeviceType  DeviceType // Origin device class

	// Character is the committed character for this key press, or nil if
	// none. On the wire a nil Character and an empty string are both
	// carried as a zero-length trailing segment; decode always yields nil.
	Character *string
}

// EventTypeFromWire maps a wire word to an EventType. Unmapped codes are
// a structural decode error, never clamped to a default.
func EventTypeFromWire(v uint64) (EventType, error) {
	switch EventType(v) {
	case EventTypeDown, EventTypeUp, EventTypeRepeat:
		return EventType(v), nil
	default:
		return 0, fmt.Errorf("event type code %d: %w", v, ErrInvalidEnumValue)
	}
}

// DeviceTypeFromWire maps a wire word to a DeviceType. Unmapped codes are
// a structural decode error, never clamped to a default.
func DeviceTypeFromWire(v uint64) (DeviceType, error) {
	switch DeviceType(v) {
	case DeviceTypeKeyboard, DeviceTypeDirectionalPad, DeviceTypeGamepad,
		DeviceTypeJoystick, DeviceTypeHdmi:
		return DeviceType(v), nil
	default:
		return 0, fmt.Errorf("device type code %d: %w", v, ErrInvalidEnumValue)
	}
}

func (t EventType) valid() bool {
	return t <= EventTypeRepeat
}

func (t EventType) String() string {
	switch t {
	case EventTypeDown:
		return "down"
	case EventTypeUp:
		return "up"
	case EventTypeRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("EventType(%d)", uint64(t))
	}
}

func (d DeviceType) valid() bool {
	return d <= DeviceTypeHdmi
}

func (d DeviceType) String() string {
	switch d {
	case DeviceTypeKeyboard:
		return "keyboard"
	case DeviceTypeDirectionalPad:
		return "directional-pad"
	case DeviceTypeGamepad:
		return "gamepad"
	case DeviceTypeJoystick:
		return "joystick"
	case DeviceTypeHdmi:
		return "hdmi"
	default:
		return fmt.Sprintf("DeviceType(%d)", uint64(d))
	}
}

// ParseEventType maps the textual form produced by EventType.String back
// to an EventType. Used by the CLI and the HTTP API.
func ParseEventType(s string) (EventType, error) {
	switch s {
	case "down":
		return EventTypeDown, nil
	case "up":
		return EventTypeUp, nil
	case "repeat":
		return EventTypeRepeat, nil
	default:
		return 0, fmt.Errorf("event type %q: %w", s, ErrInvalidEnumValue)
	}
}

// ParseDeviceType maps the textual form produced by DeviceType.String back
// to a DeviceType. Used by the CLI and the HTTP API.
func ParseDeviceType(s string) (DeviceType, error) {
	switch s {
	case "keyboard":
		return DeviceTypeKeyboard, nil
	case "directional-pad":
		return DeviceTypeDirectionalPad, nil
	case "gamepad":
		return DeviceTypeGamepad, nil
	case "joystick":
		return DeviceTypeJoystick, nil
	case "hdmi":
		return DeviceTypeHdmi, nil
	default:
		return 0, fmt.Errorf("device type %q: %w", s, ErrInvalidEnumValue)
	}
}

// EncodedSize returns the number of bytes Encode will produce for the event.
func (e *KeyEvent) EncodedSize() int {
	return HeaderSize + e.characterSize()
}

// HasCharacter reports whether the event carries a committed character.
func (e *KeyEvent) HasCharacter() bool {
	return e.Character != nil && *e.Character != ""
}

// Equal reports field-for-field equality. Character is compared by value;
// nil and the empty string are considered equal since they are
// indistinguishable on the wire.
func (e *KeyEvent) Equal(other *KeyEvent) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Timestamp != other.Timestamp ||
		e.Type != other.Type ||
		e.PhysicalKey != other.PhysicalKey ||
		e.LogicalKey != other.LogicalKey ||
		e.Synthesized != other.Synthesized ||
		e.DeviceType != other.DeviceType {
		return false
	}
	return e.characterOrEmpty() == other.characterOrEmpty()
}

func (e *KeyEvent) characterOrEmpty() string {
	if e.Character == nil {
		return ""
	}
	return *e.Character
}

func (e *KeyEvent) characterSize() int {
	if e.Character == nil {
		return 0
	}
	return len(*e.Character)
}

func (e *KeyEvent) characterValid() bool {
	return e.Character == nil || utf8.ValidString(*e.Character)
}
