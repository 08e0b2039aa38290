// Package codec provides key event serialization and deserialization for
// keywire.
//
// The codec package implements the fixed-layout binary packet format used
// to carry a single key event across a process or layer boundary. The
// format is a compatibility-critical wire contract: the peer on the other
// side of the channel is an independent implementation, and both sides
// must agree on field count, field order, width and endianness
// byte-for-byte.
//
// # Packet Format
//
// Packets are serialized in a binary format with the following structure:
//
//	[CharSize(8)][Timestamp(8)][Type(8)][PhysicalKey(8)][LogicalKey(8)][Synthesized(8)][DeviceType(8)][Character]
//
// Fields (all fixed words little-endian):
//   - CharSize: byte length of the trailing UTF-8 character segment, 0 if absent
//   - Timestamp: signed 64-bit event time, unit defined by the producer
//   - Type: 0=down, 1=up, 2=repeat
//   - PhysicalKey: unsigned 64-bit physical key code
//   - LogicalKey: unsigned 64-bit logical key code
//   - Synthesized: 0=hardware, nonzero=programmatically generated
//   - DeviceType: 0=keyboard, 1=directional-pad, 2=gamepad, 3=joystick, 4=hdmi
//   - Character: CharSize bytes of raw UTF-8, no terminator, omitted when CharSize is 0
//
// The total packet size is: 56 bytes (header) + CharSize.
//
// The 7-word fixed header is an unversioned protocol constant. Any future
// extension requires an explicit format version discriminator, not silent
// field insertion.
//
// # Absent vs Empty Character
//
// A zero CharSize is canonically decoded as "no character" (nil), never as
// a present-but-empty string. Producers should pass a nil Character when
// there is none; an explicit empty string encodes to the same bytes and is
// treated as equivalent.
//
// # Usage
//
// Basic encoding and decoding:
//
//	codec := codec.NewKeyEventCodec()
//
//	// Encode an event
//	packet, err := codec.Encode(event)
//	if err != nil {
//	    return err
//	}
//
//	// Decode an event
//	event, err := codec.Decode(packet)
//	if err != nil {
//	    return err // Packet is structurally corrupt
//	}
//
// # Error Handling
//
// Decode validates structure only, not key-code semantics:
//   - ErrTruncatedBuffer: buffer shorter than the fixed header, or the
//     declared character length does not match the trailing bytes
//   - ErrInvalidEnumValue: a type or device-type word outside the defined
//     variant set
//   - ErrInvalidUTF8: malformed trailing character bytes
//
// All are matchable with errors.Is. Decoding is all-or-nothing: no
// partial event is ever returned, and none of these errors is recoverable
// by retry — the caller must discard the message and treat the channel
// framing as desynchronized.
//
// # Thread Safety
//
// KeyEventCodec is stateless and safe for concurrent use. Both operations
// are pure single-pass transformations with cost linear in the packet
// size; the codec neither retains nor frees buffers passed to it.
package codec
