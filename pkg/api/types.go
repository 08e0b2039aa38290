package api

import (
	"fmt"

	"github.com/skarsten/keywire/pkg/codec"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind       string
	Port       int
	APIKey     string
	JournalDir string
}

// KeyEventPayload is the JSON representation of a key event. Enum fields
// use their textual form ("down", "keyboard", ...).
type KeyEventPayload struct {
	Timestamp   int64   `json:"timestamp"`
	Type        string  `json:"type"`
	PhysicalKey uint64  `json:"physical_key"`
	LogicalKey  uint64  `json:"logical_key"`
	Synthesized bool    `json:"synthesized"`
	DeviceType  string  `json:"device_type"`
	Character   *string `json:"character,omitempty"`
}

// PayloadFromEvent converts a decoded event to its JSON form.
func PayloadFromEvent(event *codec.KeyEvent) KeyEventPayload {
	return KeyEventPayload{
		Timestamp:   event.Timestamp,
		Type:        event.Type.String(),
		PhysicalKey: event.PhysicalKey,
		LogicalKey:  event.LogicalKey,
		Synthesized: event.Synthesized,
		DeviceType:  event.DeviceType.String(),
		Character:   event.Character,
	}
}

// Event converts the payload to a codec event, validating enum names.
func (p *KeyEventPayload) Event() (*codec.KeyEvent, error) {
	eventType, err := codec.ParseEventType(p.Type)
	if err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}
	deviceType, err := codec.ParseDeviceType(p.DeviceType)
	if err != nil {
		return nil, fmt.Errorf("device_type: %w", err)
	}
	return &codec.KeyEvent{
		Timestamp:   p.Timestamp,
		Type:        eventType,
		PhysicalKey: p.PhysicalKey,
		LogicalKey:  p.LogicalKey,
		Synthesized: p.Synthesized,
		DeviceType:  deviceType,
		Character:   p.Character,
	}, nil
}

// DecodeRequest carries a base64 packet when the decode endpoint is
// called with a JSON body instead of a raw octet-stream.
type DecodeRequest struct {
	Packet string `json:"packet"`
}

// EncodeResponse carries the encoded packet for an event.
type EncodeResponse struct {
	Packet string `json:"packet"` // base64
	Size   int    `json:"size"`
}

// EventAppendResponse carries the journal id assigned to an event.
type EventAppendResponse struct {
	ID string `json:"id"`
}

// JournaledEventResponse carries a journaled event and its id.
type JournaledEventResponse struct {
	ID    string          `json:"id"`
	Event KeyEventPayload `json:"event"`
}
