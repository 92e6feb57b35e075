package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/idle"
	"github.com/simonbystrom/teampulse/internal/persist"
)

// Run shows the dashboard until the user quits or ctx is cancelled. It
// owns the inactivity monitor and, for file storage, the reload watcher.
func Run(ctx context.Context, cfg config.Config, a *app.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var p *tea.Program
	monitor := idle.New(cfg.Inactivity.Timeout.Duration, func() {
		m, ok := a.MarkCurrentOffline()
		p.Send(IdleMsg{Member: m, OK: ok})
	})

	model := NewApp(cfg, a, monitor)
	p = tea.NewProgram(model,
		tea.WithAltScreen(),
		// All-motion tracking reports hover movement too, which counts as
		// activity for the inactivity monitor.
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	monitor.Start()
	defer monitor.Stop()

	if path, ok := a.WatchPath(); ok {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			slog.Warn("cannot create data directory, external changes will not be seen", "error", err)
		} else {
			go func() {
				err := persist.Watch(ctx, path, func() {
					if a.Reload() {
						p.Send(ReloadedMsg{})
					}
				})
				if err != nil {
					slog.Warn("state watcher stopped", "path", path, "error", err)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
