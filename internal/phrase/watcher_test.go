package phrase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	idiomsPath := filepath.Join(dir, "idioms.json")
	slangPath := filepath.Join(dir, "slang.json")
	require.NoError(t, os.WriteFile(idiomsPath, []byte(`{}`), 0644))

	store := NewStore(idiomsPath, slangPath, MatchSubstring)
	watcher := NewWatcher(store)
	watcher.debounce = 10 * time.Millisecond
	reloaded := make(chan *Database, 8)
	watcher.OnReload(func(db *Database) {
		reloaded <- db
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(slangPath, []byte(`{"lit": "exciting"}`), 0644))

	select {
	case db := <-reloaded:
		assert.Equal(t, 1, db.Slang().Len())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the store")
	}
	assert.Len(t, store.Match("that was lit"), 1)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "idioms.json"), filepath.Join(dir, "slang.json"), MatchSubstring)
	watcher := NewWatcher(store)
	watcher.debounce = 10 * time.Millisecond
	reloaded := make(chan *Database, 8)
	watcher.OnReload(func(db *Database) {
		reloaded <- db
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
