package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"figedit/internal/codec"
	"figedit/internal/domain"
	"figedit/internal/editor"
	"figedit/internal/repository"
	"figedit/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli is the root command plus the app its pre-run hook builds
type cli struct {
	root *cobra.Command
	app  *app
}

// execute runs the command line and always releases the app afterwards,
// including when a command fails
func (c *cli) execute() error {
	defer func() {
		if c.app != nil {
			c.app.close()
		}
	}()
	return c.root.Execute()
}

func newCLI() *cli {
	flags := &globalFlags{}
	c := &cli{}

	root := &cobra.Command{
		Use:   "figedit",
		Short: "figedit - edit figure records stored as text, JSON or XML",
		Long: `figedit views and edits a single figure (name, width, height) stored
in a .txt, .json or .xml file. The file's extension selects its encoding and
saves are written back in the same encoding.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default: search FIGEDIT_CONFIG, ./figedit.yaml, XDG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&flags.history, "history", false, "record saves in the history journal")
	root.PersistentFlags().StringVar(&flags.historyDB, "history-db", "", "history journal database path")

	appFn := func() *app { return c.app }
	root.AddCommand(
		newEditCmd(appFn),
		newShowCmd(appFn),
		newSetCmd(appFn),
		newConvertCmd(appFn),
		newHistoryCmd(appFn),
		newWatchCmd(appFn),
		newConfigCmd(appFn),
	)
	c.root = root
	return c
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newEditCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path>",
		Short: "Edit a figure interactively",
		Long: `Open the figure file and edit it through a menu.

Example:
  figedit edit shapes/box.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			sh := editor.NewShell(a.newSession(args[0]), cmd.InOrStdin(), cmd.OutOrStdout())
			err := sh.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newShowCmd(appFn func() *app) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print a figure",
		Long: `Print the figure stored at path, optionally re-encoded.

Example:
  figedit show box.xml --as json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			fig, err := a.store.Load(args[0])
			if err != nil {
				return err
			}

			if as == "" {
				fmt.Fprintln(cmd.OutOrStdout(), fig)
				return nil
			}

			data, err := codec.Encode(fig, codec.ParseFormat(as))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "encoding to print: text, json or xml")
	return cmd
}

func newSetCmd(appFn func() *app) *cobra.Command {
	var (
		name          string
		width, height string
	)

	cmd := &cobra.Command{
		Use:   "set <path>",
		Short: "Change figure fields and save",
		Long: `Change one or more fields of the figure and save it in place.

Example:
  figedit set box.txt --width 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			session := a.newSession(args[0])
			if err := session.Load(); err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				if err := session.SetName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("width") {
				if err := session.SetWidth(width); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("height") {
				if err := session.SetHeight(height); err != nil {
					return err
				}
			}

			if !session.Dirty() {
				return errors.New("nothing to change: pass --name, --width or --height")
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}

			fig, _ := session.Figure()
			fmt.Fprintln(cmd.OutOrStdout(), fig)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&width, "width", "", "new width (integer)")
	cmd.Flags().StringVar(&height, "height", "", "new height (integer)")
	return cmd
}

func newConvertCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Re-encode a figure into another file",
		Long: `Load the figure from src and save it to dst in the encoding dst's
extension names.

Example:
  figedit convert box.txt box.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			fig, err := a.store.Convert(args[0], args[1])
			if err != nil {
				return err
			}
			a.logger.Info("figure converted",
				zap.String("src", args[0]),
				zap.String("dst", args[1]),
				zap.String("name", fig.Name))
			return nil
		},
	}
}

func newHistoryCmd(appFn func() *app) *cobra.Command {
	var (
		limit  int
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "history <path>",
		Short: "List recorded saves of a figure file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			h, err := a.openHistory(true)
			if err != nil {
				return err
			}
			path := repository.NormalizePath(args[0])
			out := cmd.OutOrStdout()

			if latest {
				rev, err := h.Latest(cmd.Context(), path)
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Fprintln(out, "No revisions recorded.")
					return nil
				}
				if err != nil {
					return err
				}
				printRevision(out, *rev)
				fmt.Fprintf(out, "id: %s\ndigest: %s\n", rev.ID, rev.Digest)
				return nil
			}

			if limit <= 0 {
				limit = a.cfg.History.Limit
			}
			revs, err := h.List(cmd.Context(), path, limit)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				fmt.Fprintln(out, "No revisions recorded.")
				return nil
			}

			for _, rev := range revs {
				printRevision(out, rev)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of revisions to list (default from config)")
	cmd.Flags().BoolVar(&latest, "latest", false, "show only the newest revision in full")
	return cmd
}

func printRevision(w io.Writer, rev domain.Revision) {
	fmt.Fprintf(w, "%s  %-4s  %s  %q %dx%d\n",
		rev.SavedAt.Local().Format(time.RFC3339),
		rev.Format,
		rev.Digest[:12],
		rev.Figure.Name, rev.Figure.Width, rev.Figure.Height)
}

func newWatchCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>",
		Short: "Print the figure every time its file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			out := cmd.OutOrStdout()

			show := func(path string) {
				fig, err := a.store.Load(path)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					return
				}
				fmt.Fprintf(out, "%s\n\n", fig)
			}
			show(args[0])

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			w := watcher.New(args[0], show).
				WithDebounce(a.cfg.Watch.Debounce.Duration()).
				WithLogger(a.logger)
			err := w.Watch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
