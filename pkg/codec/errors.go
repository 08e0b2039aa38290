package codec

// Structural decode errors. All three indicate a corrupted or
// protocol-mismatched buffer; none is recoverable by retry. Callers
// should discard the whole message and treat the channel as
// desynchronized. Match with errors.Is.
var (
	// ErrTruncatedBuffer indicates the buffer is shorter than the fixed
	// header, or the declared trailing character length does not match
	// the bytes actually present.
	ErrTruncatedBuffer = &CodecError{"buffer length does not match declared layout"}

	// ErrInvalidEnumValue indicates an event type or device type word
	// outside the defined variant set.
	ErrInvalidEnumValue = &CodecError{"enum value outside defined variants"}

	// ErrInvalidUTF8 indicates the trailing character bytes are not
	// well-formed UTF-8.
	ErrInvalidUTF8 = &CodecError{"character bytes are not valid UTF-8"}
)

// CodecError represents a structural wire-format error.
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}
