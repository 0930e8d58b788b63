package main

import (
	"fmt"
	"os"
	"path/filepath"

	"figedit/internal/config"
	"figedit/internal/editor"
	"figedit/internal/logging"
	"figedit/internal/repository"
	"figedit/internal/repository/sqlite"
	"figedit/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command shares, built once per invocation
type app struct {
	cfg     *config.Config
	cfgPath string // empty when running on defaults
	logger  *zap.Logger
	store   *store.Store
	history repository.History
	closed  bool
}

type globalFlags struct {
	configPath string
	logLevel   string
	history    bool
	historyDB  string
}

func newApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if flags.configPath != "" {
		cfg, path, err = config.LoadFromPath(flags.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("history") {
		cfg.History.Enabled = flags.history
	}
	if flags.historyDB != "" {
		cfg.History.Path = flags.historyDB
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("config loaded", zap.String("path", path))
	}

	return &app{
		cfg:     cfg,
		cfgPath: path,
		logger:  logger,
		store:   store.New(logger),
	}, nil
}

// openHistory opens the journal if it is enabled. With required set it is
// opened regardless, for commands that only read it.
func (a *app) openHistory(required bool) (repository.History, error) {
	if a.history != nil {
		return a.history, nil
	}
	if !a.cfg.History.Enabled && !required {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(a.cfg.History.Path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	h, err := sqlite.New(a.cfg.History.Path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("history opened", zap.String("path", a.cfg.History.Path))
	a.history = h
	return h, nil
}

func (a *app) newSession(path string) *editor.Session {
	opts := []editor.Option{editor.WithLogger(a.logger)}

	h, err := a.openHistory(false)
	if err != nil {
		a.logger.Warn("history unavailable", zap.Error(err))
	} else if h != nil {
		opts = append(opts, editor.WithHistory(h))
	}

	return editor.NewSession(path, a.store, opts...)
}

// close releases the journal and flushes the logger. It is safe to call twice.
func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("close history", zap.Error(err))
		}
		a.history = nil
	}
	_ = a.logger.Sync()
}
