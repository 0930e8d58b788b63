package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"figedit/internal/domain"
)

// xmlHeader is the declaration existing figure documents carry
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"
)

// XMLCodec handles XML import/export.
//
// Decoding is generic: every direct child of the root element becomes one
// "Tag: text" line, whatever the tags are called. Encoding always writes a
// Figure root with exactly Name, Width and Height children.
type XMLCodec struct{}

// NewXMLCodec creates a new XML codec
func NewXMLCodec() *XMLCodec {
	return &XMLCodec{}
}

// Format returns the codec format identifier
func (c *XMLCodec) Format() Format {
	return XML
}

type xmlFigure struct {
	XMLName xml.Name `xml:"Figure"`
	XSI     string   `xml:"xmlns:xsi,attr"`
	XSD     string   `xml:"xmlns:xsd,attr"`
	Name    string   `xml:"Name"`
	Width   int64    `xml:"Width"`
	Height  int64    `xml:"Height"`
}

// DecodeLines flattens the root's element children into lines, in document
// order. A child's text is the concatenation of all character data below it.
func (c *XMLCodec) DecodeLines(data []byte) (domain.Lines, error) {
	decoder := xml.NewDecoder(bytes.NewReader(trimBOM(data)))

	lines := domain.Lines{}
	var (
		depth    int
		rootSeen bool
		label    string
		text     strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeErr(XML, ErrMalformedXML, 0, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch depth {
			case 0:
				if rootSeen {
					return nil, decodeErr(XML, ErrMalformedXML, 0, errors.New("multiple root elements"))
				}
				rootSeen = true
			case 1:
				label = t.Name.Local
				text.Reset()
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 1 {
				lines = append(lines, domain.FormatLine(label, text.String()))
			}
		case xml.CharData:
			if depth >= 2 {
				text.Write(t)
			} else if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, decodeErr(XML, ErrMalformedXML, 0, errors.New("text outside root element"))
			}
		}
	}

	if !rootSeen {
		return nil, decodeErr(XML, ErrMalformedXML, 0, errors.New("no root element"))
	}

	return lines, nil
}

// Decode flattens the document into lines and parses them positionally
func (c *XMLCodec) Decode(data []byte) (domain.Figure, error) {
	lines, err := c.DecodeLines(data)
	if err != nil {
		return domain.Figure{}, err
	}
	return parseLines(XML, lines)
}

// Encode exports the figure as an element-per-field document
func (c *XMLCodec) Encode(fig domain.Figure) ([]byte, error) {
	doc := xmlFigure{
		XSI:    xsiNamespace,
		XSD:    xsdNamespace,
		Name:   fig.Name,
		Width:  fig.Width,
		Height: fig.Height,
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode XML: %w", err)
	}

	return append([]byte(xmlHeader), body...), nil
}
