package domain

import (
	"fmt"
	"strings"
)

// Field positions inside Lines
const (
	FieldName = iota
	FieldWidth
	FieldHeight

	// FieldCount is the number of lines a complete figure needs
	FieldCount
)

// Labels used when a figure is rendered as lines
const (
	LabelName   = "Name"
	LabelWidth  = "Width"
	LabelHeight = "Height"
)

// Figure is the canonical record edited by figedit
type Figure struct {
	Name   string
	Width  int64
	Height int64
}

// NewFigure creates a figure from its three fields
func NewFigure(name string, width, height int64) Figure {
	return Figure{Name: name, Width: width, Height: height}
}

// Lines renders the figure in the positional label:value shape
func (f Figure) Lines() Lines {
	return Lines{
		FormatLine(LabelName, f.Name),
		FormatLine(LabelWidth, fmt.Sprint(f.Width)),
		FormatLine(LabelHeight, fmt.Sprint(f.Height)),
	}
}

// String returns the figure as newline separated lines
func (f Figure) String() string {
	return f.Lines().String()
}

// Lines is an ordered list of "Label: value" strings.
// Entries are interpreted by position as [Name, Width, Height].
type Lines []string

// FormatLine joins a label and a value into one line
func FormatLine(label, value string) string {
	return label + ": " + value
}

// Field splits line i on its first colon and trims both halves.
// A line without a colon has an empty label and the whole line as value.
func (l Lines) Field(i int) (label, value string) {
	if i < 0 || i >= len(l) {
		return "", ""
	}
	before, after, found := strings.Cut(l[i], ":")
	if !found {
		return "", strings.TrimSpace(l[i])
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// Complete reports whether there are enough lines to build a figure
func (l Lines) Complete() bool {
	return len(l) >= FieldCount
}

// String joins the lines with newlines, without a trailing newline
func (l Lines) String() string {
	return strings.Join(l, "\n")
}
