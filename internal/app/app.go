// Package app wires the member and role stores to persistence. An App is
// the single owner of dashboard state for one process.
package app

import (
	"fmt"
	"log/slog"

	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/member"
	"github.com/simonbystrom/teampulse/internal/persist"
	"github.com/simonbystrom/teampulse/internal/role"
)

type App struct {
	Members *member.Store
	Role    *role.Store

	persist      *persist.Adapter
	fallbackID   int
	unsubscribes []func()
}

// Option configures an App.
type Option func(*App)

// WithFallbackMember sets the member marked offline by the inactivity
// monitor when no member matches the current user.
func WithFallbackMember(id int) Option {
	return func(a *App) { a.fallbackID = id }
}

// New seeds the stores from the saved snapshot, or from defaults when none
// can be loaded, and subscribes persistence to every later change.
func New(adapter *persist.Adapter, defaults persist.Snapshot, opts ...Option) *App {
	seed, ok := adapter.Load()
	if ok {
		slog.Info("restored saved state", "key", adapter.Key(), "members", len(seed.Members))
	} else {
		seed = defaults
		slog.Info("starting with default state", "members", len(seed.Members))
	}

	a := &App{
		Members:    member.NewStore(seed.Members),
		Role:       role.NewStore(seed.Role),
		persist:    adapter,
		fallbackID: 1,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.unsubscribes = append(a.unsubscribes,
		a.Members.Subscribe(a.save),
		a.Role.Subscribe(a.save),
	)
	return a
}

// Open builds an App from configuration.
func Open(cfg config.Config) (*App, error) {
	backend, err := persist.Open(cfg.Storage.Backend, cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	adapter := persist.NewAdapter(backend, cfg.Storage.Key)
	return New(adapter, DefaultSnapshot(cfg.Team), WithFallbackMember(cfg.Inactivity.MemberID)), nil
}

// WatchPath is the file holding the snapshot, when storage is file based.
func (a *App) WatchPath() (string, bool) {
	fb, ok := a.persist.Backend().(*persist.FileBackend)
	if !ok {
		return "", false
	}
	return fb.Path(a.persist.Key()), true
}

// Snapshot captures both stores.
func (a *App) Snapshot() persist.Snapshot {
	return persist.Snapshot{
		Members: a.Members.Members(),
		Role:    a.Role.State(),
	}
}

// Reload applies a snapshot written by another process, if there is one.
// It reports whether state changed.
func (a *App) Reload() bool {
	s, ok := a.persist.LoadChanged()
	if !ok {
		return false
	}
	a.Members.Replace(s.Members)
	a.Role.Replace(s.Role)
	slog.Info("reloaded state after external change", "members", len(s.Members))
	return true
}

// CurrentMember is the member the signed-in user acts as: the member named
// like the current user, else the fallback member.
func (a *App) CurrentMember() (member.Member, bool) {
	user := a.Role.State().CurrentUser
	for _, m := range a.Members.Members() {
		if m.Name == user {
			return m, true
		}
	}
	return a.Members.Member(a.fallbackID)
}

// MarkCurrentOffline is the inactivity monitor's action.
func (a *App) MarkCurrentOffline() (member.Member, bool) {
	m, ok := a.CurrentMember()
	if !ok {
		slog.Warn("inactivity: no member to mark offline", "user", a.Role.State().CurrentUser, "fallback", a.fallbackID)
		return member.Member{}, false
	}
	a.Members.SetMemberStatus(m.ID, member.StatusOffline)
	m.Status = member.StatusOffline
	return m, true
}

// Close detaches persistence and flushes the last snapshot.
func (a *App) Close() error {
	for _, unsub := range a.unsubscribes {
		unsub()
	}
	a.unsubscribes = nil
	if err := a.persist.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

func (a *App) save() {
	a.persist.Save(a.Snapshot())
}

// DefaultSnapshot builds the fresh-start state from configuration. Seed
// entries with an unknown status start Offline; duplicate ids are dropped.
func DefaultSnapshot(team config.Team) persist.Snapshot {
	members := make([]member.Member, 0, len(team.Members))
	seen := make(map[int]bool)
	for _, sm := range team.Members {
		if seen[sm.ID] {
			slog.Warn("duplicate seed member id, skipping", "id", sm.ID, "name", sm.Name)
			continue
		}
		seen[sm.ID] = true
		status, err := member.ParseStatus(sm.Status)
		if err != nil {
			slog.Warn("invalid seed member status, using Offline", "id", sm.ID, "status", sm.Status)
			status = member.StatusOffline
		}
		members = append(members, member.Member{
			ID:     sm.ID,
			Name:   sm.Name,
			Status: status,
			Tasks:  []member.Task{},
		})
	}

	r, err := role.ParseRole(team.Role)
	if err != nil {
		r = role.Lead
	}
	return persist.Snapshot{
		Members: members,
		Role:    role.State{CurrentRole: r, CurrentUser: team.CurrentUser},
	}
}
