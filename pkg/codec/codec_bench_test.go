//go:build bench
// +build bench

package codec

import (
	"strings"
	"testing"
)

func benchEvents() []struct {
	name  string
	event KeyEvent
} {
	long := strings.Repeat("x", 1024)
	short := "a"
	return []struct {
		name  string
		event KeyEvent
	}{
		{
			name: "no_character",
			event: KeyEvent{
				Timestamp:   123456789,
				Type:        EventTypeDown,
				PhysicalKey: 0x70,
				LogicalKey:  0x61,
				DeviceType:  DeviceTypeKeyboard,
			},
		},
		{
			name: "one_character",
			event: KeyEvent{
				Timestamp:   123456789,
				Type:        EventTypeDown,
				PhysicalKey: 0x70,
				LogicalKey:  0x61,
				DeviceType:  DeviceTypeKeyboard,
				Character:   &short,
			},
		},
		{
			name: "long_character",
			event: KeyEvent{
				Timestamp:   123456789,
				Type:        EventTypeRepeat,
				PhysicalKey: 0x70,
				LogicalKey:  0x61,
				DeviceType:  DeviceTypeKeyboard,
				Character:   &long,
			},
		},
	}
}

func BenchmarkKeyEventCodec_Encode(b *testing.B) {
	codec := NewKeyEventCodec()

	for _, bm := range benchEvents() {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := codec.Encode(&bm.event)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkKeyEventCodec_Decode(b *testing.B) {
	codec := NewKeyEventCodec()

	for _, bm := range benchEvents() {
		b.Run(bm.name, func(b *testing.B) {
			packet, err := codec.Encode(&bm.event)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := codec.Decode(packet)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkKeyEventCodec_RoundTrip(b *testing.B) {
	codec := NewKeyEventCodec()

	for _, bm := range benchEvents() {
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				packet, err := codec.Encode(&bm.event)
				if err != nil {
					b.Fatal(err)
				}
				_, err = codec.Decode(packet)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
