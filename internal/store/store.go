// Package store persists figures to files, choosing the encoding from the
// file extension.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"figedit/internal/codec"
	"figedit/internal/domain"

	"go.uber.org/zap"
)

var (
	// ErrFileNotFound is returned by Load when the path does not name a file
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned when the extension maps to no codec
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat
	// ErrIO wraps read and write failures
	ErrIO = errors.New("i/o error")
)

// filePerm is used when Save creates a file
const filePerm = 0644

var extensions = map[string]codec.Format{
	".txt":  codec.Text,
	".json": codec.JSON,
	".xml":  codec.XML,
}

// InferFormat maps a path's extension, case-insensitively, to a format.
// Unknown or missing extensions yield codec.Unsupported.
func InferFormat(path string) codec.Format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return codec.Unsupported
}

// Store loads and saves figures. It holds no figure state between calls.
type Store struct {
	logger *zap.Logger
}

// New creates a store that logs through logger; nil disables logging
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger.Named("store")}
}

// Load reads the file at path and decodes it in the format its extension names
func (s *Store) Load(path string) (domain.Figure, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Figure{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return domain.Figure{}, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if info.IsDir() {
		return domain.Figure{}, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	format := InferFormat(path)
	if format == codec.Unsupported {
		return domain.Figure{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Figure{}, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	fig, err := codec.Decode(data, format)
	if err != nil {
		s.logger.Debug("decode failed", zap.String("path", path), zap.Stringer("format", format), zap.Error(err))
		return domain.Figure{}, fmt.Errorf("load %s: %w", path, err)
	}

	s.logger.Debug("figure loaded",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("bytes", len(data)))
	return fig, nil
}

// Save encodes fig in the format the path's extension names and overwrites
// the file
func (s *Store) Save(path string, fig domain.Figure) error {
	format := InferFormat(path)
	if format == codec.Unsupported {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := codec.Encode(fig, format)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}

	s.logger.Debug("figure saved",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("bytes", len(data)))
	return nil
}

// Convert loads src and saves the same figure to dst, re-encoding it in the
// format dst's extension names
func (s *Store) Convert(src, dst string) (domain.Figure, error) {
	fig, err := s.Load(src)
	if err != nil {
		return domain.Figure{}, err
	}
	if err := s.Save(dst, fig); err != nil {
		return domain.Figure{}, err
	}
	return fig, nil
}
