package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skarsten/keywire/pkg/codec"
)

// addEventFlags registers the per-field flags shared by the encode and
// journal append commands.
func addEventFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("timestamp", 0, "Event time (unit defined by the producer, typically microseconds)")
	cmd.Flags().String("type", "down", "Event type: down, up or repeat")
	cmd.Flags().Uint64("physical", 0, "Physical key code")
	cmd.Flags().Uint64("logical", 0, "Logical key code")
	cmd.Flags().Bool("synthesized", false, "Mark the event as programmatically generated")
	cmd.Flags().String("device", "keyboard", "Device type: keyboard, directional-pad, gamepad, joystick or hdmi")
	cmd.Flags().String("character", "", "Committed character (empty means absent)")
}

// eventFromFlags builds a key event from the registered flags.
func eventFromFlags(cmd *cobra.Command) (*codec.KeyEvent, error) {
	timestamp, _ := cmd.Flags().GetInt64("timestamp")
	typeName, _ := cmd.Flags().GetString("type")
	physical, _ := cmd.Flags().GetUint64("physical")
	logical, _ := cmd.Flags().GetUint64("logical")
	synthesized, _ := cmd.Flags().GetBool("synthesized")
	deviceName, _ := cmd.Flags().GetString("device")
	character, _ := cmd.Flags().GetString("character")

	eventType, err := codec.ParseEventType(typeName)
	if err != nil {
		return nil, err
	}
	deviceType, err := codec.ParseDeviceType(deviceName)
	if err != nil {
		return nil, err
	}

	event := &codec.KeyEvent{
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
	return event, nil
}

// printEvent writes the decoded fields in a fixed column layout.
func printEvent(cmd *cobra.Command, event *codec.KeyEvent) {
	cmd.Printf("timestamp:    %d\n", event.Timestamp)
	cmd.Printf("type:         %s\n", event.Type)
	cmd.Printf("physical-key: %#x\n", event.PhysicalKey)
	cmd.Printf("logical-key:  %#x\n", event.LogicalKey)
	cmd.Printf("synthesized:  %t\n", event.Synthesized)
	cmd.Printf("device-type:  %s\n", event.DeviceType)
	if event.Character != nil {
		cmd.Printf("character:    %q\n", *event.Character)
	} else {
		cmd.Printf("character:    (none)\n")
	}
	cmd.Printf("size:         %d bytes\n", event.EncodedSize())
}
