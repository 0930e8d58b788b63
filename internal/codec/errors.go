package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for formats without a codec
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrLineBreak is returned when a text-encoded value would span lines
	ErrLineBreak = errors.New("value contains a line break")

	// Decode failure kinds, matched with errors.Is
	ErrTooFewLines    = errors.New("too few lines")
	ErrInvalidInteger = errors.New("invalid integer")
	ErrMalformedJSON  = errors.New("malformed json")
	ErrMalformedXML   = errors.New("malformed xml")
)

// DecodeError describes why bytes could not be decoded into a figure
type DecodeError struct {
	Format Format
	Kind   error // one of the ErrTooFewLines... sentinels
	Line   int   // 1-based line for line-oriented failures, 0 otherwise
	Err    error // underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s: %v", e.Format, e.Kind)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func decodeErr(f Format, kind error, line int, cause error) *DecodeError {
	return &DecodeError{Format: f, Kind: kind, Line: line, Err: cause}
}
