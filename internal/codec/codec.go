package codec

import (
	"bytes"
	"fmt"
	"strings"

	"figedit/internal/domain"
)

// Format identifies one physical encoding of a figure
type Format int

const (
	Unsupported Format = iota
	Text
	JSON
	XML
)

// String returns the format identifier
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case XML:
		return "xml"
	default:
		return "unsupported"
	}
}

// ParseFormat maps a format name ("text", "txt", "json", "xml") to a Format.
// Unknown names yield Unsupported.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "text", "txt":
		return Text
	case "json":
		return JSON
	case "xml":
		return XML
	default:
		return Unsupported
	}
}

// Codec converts between raw bytes and a figure for one format
type Codec interface {
	Decode(data []byte) (domain.Figure, error)
	Encode(fig domain.Figure) ([]byte, error)
	Format() Format
}

// LineDecoder is implemented by codecs that decode through the
// positional "Label: value" line shape
type LineDecoder interface {
	DecodeLines(data []byte) (domain.Lines, error)
}

// utf8BOM is the byte-order mark some editors put in front of UTF-8 files
var utf8BOM = []byte("\xef\xbb\xbf")

// trimBOM drops one leading UTF-8 byte-order mark
func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

var codecs = map[Format]Codec{
	Text: NewTextCodec(),
	JSON: NewJSONCodec(),
	XML:  NewXMLCodec(),
}

// Lookup returns the codec registered for a format
func Lookup(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return c, nil
}

// Decode parses data in the given format into a figure
func Decode(data []byte, f Format) (domain.Figure, error) {
	c, err := Lookup(f)
	if err != nil {
		return domain.Figure{}, err
	}
	return c.Decode(data)
}

// Encode serializes a figure into the given format
func Encode(fig domain.Figure, f Format) ([]byte, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	return c.Encode(fig)
}

// DecodeLines parses data into the positional line shape.
// Only line-oriented formats (Text, XML) support this.
func DecodeLines(data []byte, f Format) (domain.Lines, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	ld, ok := c.(LineDecoder)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no line form", ErrUnsupportedFormat, f)
	}
	return ld.DecodeLines(data)
}
