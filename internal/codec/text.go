package codec

import (
	"fmt"
	"strconv"
	"strings"

	"figedit/internal/domain"
)

// TextCodec handles the line-oriented "Label: value" format
type TextCodec struct{}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() Format {
	return Text
}

// DecodeLines splits the input into lines. A single trailing newline does
// not produce an empty final line and CRLF endings are accepted.
func (c *TextCodec) DecodeLines(data []byte) (domain.Lines, error) {
	s := string(trimBOM(data))
	if s == "" {
		return domain.Lines{}, nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return domain.Lines(lines), nil
}

// Decode parses three positional lines into a figure
func (c *TextCodec) Decode(data []byte) (domain.Figure, error) {
	lines, err := c.DecodeLines(data)
	if err != nil {
		return domain.Figure{}, err
	}
	return parseLines(Text, lines)
}

// Encode renders the figure as three lines with no trailing newline.
// A name with a line break would shift the fields and is rejected.
func (c *TextCodec) Encode(fig domain.Figure) ([]byte, error) {
	if strings.ContainsAny(fig.Name, "\r\n") {
		return nil, fmt.Errorf("encode text: name: %w", ErrLineBreak)
	}
	return []byte(fig.Lines().String()), nil
}

// ParseLines converts the positional line shape into a figure.
// Labels are ignored; lines past the third are ignored.
func ParseLines(lines domain.Lines) (domain.Figure, error) {
	return parseLines(Text, lines)
}

func parseLines(f Format, lines domain.Lines) (domain.Figure, error) {
	if !lines.Complete() {
		return domain.Figure{}, decodeErr(f, ErrTooFewLines, 0,
			fmt.Errorf("got %d, need %d", len(lines), domain.FieldCount))
	}

	_, name := lines.Field(domain.FieldName)

	width, err := parseInt(f, lines, domain.FieldWidth)
	if err != nil {
		return domain.Figure{}, err
	}
	height, err := parseInt(f, lines, domain.FieldHeight)
	if err != nil {
		return domain.Figure{}, err
	}

	return domain.NewFigure(name, width, height), nil
}

func parseInt(f Format, lines domain.Lines, field int) (int64, error) {
	_, value := lines.Field(field)
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, decodeErr(f, ErrInvalidInteger, field+1, err)
	}
	return n, nil
}
