// Package editor holds the interactive editing session around one figure
// file: the current figure, its dirty state, and the menu loop that drives it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"figedit/internal/codec"
	"figedit/internal/domain"
	"figedit/internal/repository"
	"figedit/internal/store"

	"go.uber.org/zap"
)

var (
	// ErrNotLoaded is returned when editing or saving before a figure is loaded
	ErrNotLoaded = errors.New("no figure loaded")
	// ErrNotInteger is returned when a dimension is not a whole number
	ErrNotInteger = errors.New("value must be an integer")
	// ErrMultilineName is returned when a name contains a line break
	ErrMultilineName = errors.New("name must be a single line")
)

// FigureStore is the persistence the session needs
type FigureStore interface {
	Load(path string) (domain.Figure, error)
	Save(path string, fig domain.Figure) error
}

// Session owns the single in-memory figure for one file
type Session struct {
	path    string
	store   FigureStore
	history repository.History
	logger  *zap.Logger

	figure domain.Figure
	loaded bool
	dirty  bool
}

// Option configures a Session
type Option func(*Session)

// WithHistory records every successful save in h
func WithHistory(h repository.History) Option {
	return func(s *Session) { s.history = h }
}

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger.Named("session")
		}
	}
}

// NewSession creates a session for the file at path. Nothing is read until Load.
func NewSession(path string, st FigureStore, opts ...Option) *Session {
	s := &Session{
		path:   path,
		store:  st,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the session edits
func (s *Session) Path() string {
	return s.path
}

// Figure returns the current figure and whether one is loaded
func (s *Session) Figure() (domain.Figure, bool) {
	return s.figure, s.loaded
}

// Dirty reports whether the figure changed since the last load or save
func (s *Session) Dirty() bool {
	return s.dirty
}

// Load replaces the current figure with the file's contents.
// On failure the previous figure, if any, is kept.
func (s *Session) Load() error {
	fig, err := s.store.Load(s.path)
	if err != nil {
		return err
	}
	s.figure = fig
	s.loaded = true
	s.dirty = false
	return nil
}

// Save writes the current figure back to the file and journals it
func (s *Session) Save(ctx context.Context) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if err := s.store.Save(s.path, s.figure); err != nil {
		return err
	}
	s.dirty = false

	if s.history != nil {
		s.journal(ctx)
	}
	return nil
}

// journal failures never undo a save that reached disk
func (s *Session) journal(ctx context.Context) {
	format := store.InferFormat(s.path)
	// Encoding is deterministic, so these are the bytes Save wrote
	data, err := codec.Encode(s.figure, format)
	if err != nil {
		s.logger.Warn("history skipped", zap.String("path", s.path), zap.Error(err))
		return
	}

	rev := repository.NewRevision(s.path, format.String(), s.figure, data)
	if err := s.history.Append(ctx, rev); err != nil {
		s.logger.Warn("history append failed", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.logger.Debug("revision recorded", zap.String("id", rev.ID), zap.String("digest", rev.Digest))
}

// SetName replaces the figure name
func (s *Session) SetName(name string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrMultilineName, name)
	}
	s.figure.Name = name
	s.dirty = true
	return nil
}

// SetWidth parses input as an integer and stores it as the width
func (s *Session) SetWidth(input string) error {
	return s.setDimension(input, &s.figure.Width)
}

// SetHeight parses input as an integer and stores it as the height
func (s *Session) SetHeight(input string) error {
	return s.setDimension(input, &s.figure.Height)
}

func (s *Session) setDimension(input string, field *int64) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotInteger, input)
	}
	*field = n
	s.dirty = true
	return nil
}
