// Package cli is the teampulse command line: the dashboard by default and
// scriptable subcommands for every store operation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/persist"
	"github.com/simonbystrom/teampulse/internal/ui"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(ctx context.Context, cfg config.Config, a *app.App) error {
	return ui.Run(ctx, cfg, a)
}

// options holds the global flags.
type options struct {
	configPath string
	backend    string
	dataDir    string
	ephemeral  bool
	debug      bool
}

func NewRoot() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "teampulse",
		Short: "Team status dashboard",
		Long: `TeamPulse tracks who on the team is working, in a meeting, on a break or
offline, and the tasks the lead has assigned them.

Run without a subcommand to open the dashboard.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), levelFor(opts.debug, slog.LevelWarn))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logFile, err := openLogFile(cfg.Storage.DataDir)
			if err != nil {
				return err
			}
			defer logFile.Close()
			setupLogging(logFile, levelFor(opts.debug, slog.LevelInfo))

			return opts.withApp(cfg, func(a *app.App) error {
				return runTUI(cmd.Context(), cfg, a)
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default "+config.Path()+")")
	pf.StringVar(&opts.backend, "backend", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&opts.dataDir, "data-dir", "", "directory for saved state")
	pf.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		membersCmd(opts),
		tasksCmd(opts),
		statusCmd(opts),
		assignCmd(opts),
		progressCmd(opts),
		roleCmd(opts),
		whoamiCmd(opts),
		configCmd(opts),
	)
	return root
}

func levelFor(debug bool, base slog.Level) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return base
}

func setupLogging(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// openLogFile opens the dashboard log; the terminal belongs to the UI.
func openLogFile(dataDir string) (*os.File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "teampulse.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (o *options) loadConfig() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = o.dataDir
	}
	if o.ephemeral {
		cfg.Storage.Backend = persist.BackendMemory
	}
	return cfg, nil
}

// withApp runs fn against the stored state and flushes it afterwards.
func (o *options) withApp(cfg config.Config, fn func(a *app.App) error) error {
	a, err := app.Open(cfg)
	if err != nil {
		return err
	}
	runErr := fn(a)
	return errors.Join(runErr, a.Close())
}

// run loads config and state for a subcommand.
func (o *options) run(fn func(a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	return o.withApp(cfg, fn)
}
