package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"figedit/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConfigCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the figedit config file",
	}
	cmd.AddCommand(newConfigInitCmd(appFn), newConfigShowCmd(appFn))
	return cmd
}

func newConfigInitCmd(appFn func() *app) *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to the XDG config location, or to
--path. An existing file is kept unless --force is given.

Example:
  figedit config init --path ./figedit.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(path); err != nil {
				return err
			}
			a.logger.Debug("config written", zap.String("path", path))

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n%s\n", path, cfg.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "where to write the config (default: XDG config home)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			source := a.cfgPath
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n%s\n", source, a.cfg.Summary())
			return nil
		},
	}
}
