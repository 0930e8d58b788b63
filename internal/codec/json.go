package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"figedit/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() Format {
	return JSON
}

// jsonFigure fixes the key order of encoded documents
type jsonFigure struct {
	Name   string `json:"Name"`
	Width  int64  `json:"Width"`
	Height int64  `json:"Height"`
}

// Decode parses a JSON object into a figure. Missing keys stay zero and
// unknown keys are ignored.
func (c *JSONCodec) Decode(data []byte) (domain.Figure, error) {
	data = trimBOM(data)

	// Probe the top level first: null and non-objects must not decode
	// silently into a zero figure.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return domain.Figure{}, decodeErr(JSON, ErrMalformedJSON, 0, err)
	}
	if obj == nil {
		return domain.Figure{}, decodeErr(JSON, ErrMalformedJSON, 0, errors.New("top-level value is not an object"))
	}

	var jf jsonFigure
	if err := json.Unmarshal(data, &jf); err != nil {
		return domain.Figure{}, decodeErr(JSON, ErrMalformedJSON, 0, err)
	}

	return domain.NewFigure(jf.Name, jf.Width, jf.Height), nil
}

// Encode exports the figure as indented JSON without a trailing newline
func (c *JSONCodec) Encode(fig domain.Figure) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(jsonFigure{Name: fig.Name, Width: fig.Width, Height: fig.Height}); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
