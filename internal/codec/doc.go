// Package codec maps figures to and from their three on-disk encodings.
//
// Every format is served by a Codec registered in a dispatch table, so the
// rest of figedit never switches on the format itself:
//
//	fig, err := codec.Decode(data, codec.JSON)
//	out, err := codec.Encode(fig, codec.XML)
//
// # Formats
//
// Text is three lines of the shape "Label: value", read by position as
// Name, Width, Height. Labels are not checked.
//
// JSON is a single object with the keys Name, Width and Height. Decoding is
// permissive: missing keys yield zero values and unknown keys are ignored.
//
// XML decoding flattens the direct children of the root into the same
// "Label: value" lines Text uses, whatever the children are named, and then
// runs the Text parser over them. XML encoding always writes a Figure root
// with exactly the three known children. The two directions are
// deliberately not symmetric.
//
// # Errors
//
// Decode failures are returned as *DecodeError. Its Kind is one of
// ErrTooFewLines, ErrInvalidInteger, ErrMalformedJSON or ErrMalformedXML and
// matches with errors.Is. A failed decode never returns a partial figure.
//
// All functions are pure and safe for concurrent use.
package codec
