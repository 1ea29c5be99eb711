package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/watcher"
)

func newCommandFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "album.txt")
	require.NoError(t, os.WriteFile(path, []byte("snapshot start\n"), 0644))
	return path
}

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := newCommandFile(t)
	onChange := startWatcher(t, path)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(path, []byte(fmt.Sprintf("snapshot s%d\n", i)), 0644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path := newCommandFile(t)
	otherPath := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0644))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_RenameOverFile(t *testing.T) {
	path := newCommandFile(t)
	onChange := startWatcher(t, path)

	tmp := filepath.Join(filepath.Dir(path), ".album.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("snapshot saved\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification after rename over the command file")
	}
}

func TestWatcher_FileCreatedAfterStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.txt")
	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("snapshot new\n"), 0644))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification when the file appears")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := newCommandFile(t)
	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "album.txt")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	_, err = w.Start()
	require.Error(t, err)
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/albums/demo.txt")

	assert.Equal(t, "/albums/demo.txt", cfg.Path)
	assert.Equal(t, watcher.DefaultDebounce, cfg.Debounce)
}
