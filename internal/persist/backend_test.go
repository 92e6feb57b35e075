package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Backend{
		BackendFile:   NewFileBackend(filepath.Join(t.TempDir(), "nested", "dir")),
		BackendSQLite: sq,
		BackendMemory: NewMemoryBackend(),
	}
}

func TestBackends_GetMissing(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := b.Get("absent")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if ok || v != nil {
				t.Errorf("Get(absent) = %q, %v; want nil, false", v, ok)
			}
		})
	}
}

func TestBackends_SetOverwrites(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := b.Set("k", []byte(`{"v":1}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := b.Set("k", []byte(`{"v":2}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := b.Get("k")
			if err != nil || !ok {
				t.Fatalf("Get = %v, %v", ok, err)
			}
			if string(v) != `{"v":2}` {
				t.Errorf("value = %s, want {\"v\":2}", v)
			}
		})
	}
}

func TestFileBackend_AtomicWriteLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)

	if err := b.Set("state", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(b.Path("state") + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
	if b.Path("state") != filepath.Join(dir, "state.json") {
		t.Errorf("Path = %q", b.Path("state"))
	}
}

func TestFileBackend_SetFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := NewFileBackend(filepath.Join(blocker, "sub"))
	if err := b.Set("state", []byte("{}")); err == nil {
		t.Error("expected error writing under a regular file")
	}
}

func TestSQLiteBackend_Reopen(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Set("k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	b.Close()

	b2, err := OpenSQLite(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()
	v, ok, err := b2.Get("k")
	if err != nil || !ok || string(v) != "persisted" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Error("expected error for unknown backend")
	}
}
