// Package domain defines the core domain types for the figedit record editor.
//
// This package contains the canonical in-memory figure and the ordered
// line shape that the line-oriented encodings funnel through.
//
// # Core Types
//
// Figure is the single record the editor works on: a free-text name and
// two signed integer dimensions.
//
// Lines is the positional "Label: value" intermediate form. Text files are
// read directly into it and XML documents are flattened into it, so both
// share one parser. Labels are never validated; only position matters.
//
// # Design Principles
//
// - Value types, copied freely
// - No file system or encoding dependencies
package domain
