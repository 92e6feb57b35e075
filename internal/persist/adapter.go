package persist

import (
	"bytes"
	"log/slog"
	"sync"
)

// DefaultKey names the stored snapshot entry.
const DefaultKey = "teamPulseState"

// Adapter loads the snapshot at startup and writes it back in the
// background. Saves never block and never fail the caller; a newer
// snapshot replaces one that has not been written yet.
type Adapter struct {
	backend Backend
	key     string

	mu      sync.Mutex
	closed  bool
	pending chan Snapshot
	wg      sync.WaitGroup

	writtenMu sync.Mutex
	written   [][]byte // most recent writes, newest last
}

// writtenHistory is how many of our own recent writes LoadChanged ignores.
// A watcher event can arrive after a later write has already started.
const writtenHistory = 4

func NewAdapter(backend Backend, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{
		backend: backend,
		key:     key,
		pending: make(chan Snapshot, 1),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Adapter) Key() string { return a.key }

func (a *Adapter) Backend() Backend { return a.backend }

// Load returns the stored snapshot, or ok=false when none is stored or it
// cannot be used.
func (a *Adapter) Load() (Snapshot, bool) {
	data, ok, err := a.backend.Get(a.key)
	if err != nil {
		slog.Warn("failed to read saved state", "key", a.key, "error", err)
		return Snapshot{}, false
	}
	if !ok {
		return Snapshot{}, false
	}
	s, err := Decode(data)
	if err != nil {
		slog.Warn("ignoring malformed saved state", "key", a.key, "error", err)
		return Snapshot{}, false
	}
	a.remember(data)
	return s, true
}

// LoadChanged is Load restricted to content this adapter did not write
// itself. It lets a file watcher ignore the echo of our own saves.
func (a *Adapter) LoadChanged() (Snapshot, bool) {
	data, ok, err := a.backend.Get(a.key)
	if err != nil || !ok {
		return Snapshot{}, false
	}
	if a.wroteItself(data) {
		return Snapshot{}, false
	}
	s, err := Decode(data)
	if err != nil {
		slog.Debug("external state change not usable", "key", a.key, "error", err)
		return Snapshot{}, false
	}
	a.remember(data)
	return s, true
}

// Save queues s for writing. The caller must not modify s afterwards.
func (a *Adapter) Save(s Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case <-a.pending:
	default:
	}
	a.pending <- s
}

// Close writes any queued snapshot, stops the writer and closes the backend.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.pending)
	a.mu.Unlock()

	a.wg.Wait()
	return a.backend.Close()
}

func (a *Adapter) run() {
	defer a.wg.Done()
	for s := range a.pending {
		a.write(s)
	}
}

func (a *Adapter) write(s Snapshot) {
	data, err := Encode(s)
	if err != nil {
		slog.Warn("failed to encode state", "error", err)
		return
	}
	a.remember(data)
	if err := a.backend.Set(a.key, data); err != nil {
		slog.Warn("failed to save state", "key", a.key, "error", err)
		return
	}
	slog.Debug("state saved", "key", a.key, "members", len(s.Members))
}

func (a *Adapter) remember(data []byte) {
	a.writtenMu.Lock()
	defer a.writtenMu.Unlock()
	a.written = append(a.written, data)
	if len(a.written) > writtenHistory {
		a.written = a.written[len(a.written)-writtenHistory:]
	}
}

func (a *Adapter) wroteItself(data []byte) bool {
	a.writtenMu.Lock()
	defer a.writtenMu.Unlock()
	for _, w := range a.written {
		if bytes.Equal(w, data) {
			return true
		}
	}
	return false
}
