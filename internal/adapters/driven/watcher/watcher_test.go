package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) *FolderWatcher {
	t.Helper()
	w, err := NewFolderWatcher(nil)
	require.NoError(t, err)
	w.settle = 50 * time.Millisecond
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitForPath(t *testing.T, paths <-chan string) string {
	t.Helper()
	select {
	case path := <-paths:
		return path
	case <-time.After(3 * time.Second):
		t.Fatal("no path reported")
		return ""
	}
}

func TestFolderWatcher_ReportsNewDocument(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	target := filepath.Join(dir, "budget.pdf")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o600))

	assert.Equal(t, target, waitForPath(t, paths))
}

func TestFolderWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("keep"), 0o600))

	// Only the csv arrives even though the txt was written first.
	assert.Equal(t, filepath.Join(dir, "data.csv"), waitForPath(t, paths))
}

func TestFolderWatcher_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	// Simulate a slow copy with several write bursts.
	target := filepath.Join(dir, "report.xlsx")
	f, err := os.Create(target)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.Write(make([]byte, 1024))
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	assert.Equal(t, target, waitForPath(t, paths))

	// A single settled report, not one per write.
	select {
	case extra, ok := <-paths:
		if ok {
			t.Fatalf("unexpected extra report: %s", extra)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFolderWatcher_RemovedBeforeSettle(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.settle = 300 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	target := filepath.Join(dir, "draft.pdf")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o600))
	require.NoError(t, os.Remove(target))

	select {
	case path, ok := <-paths:
		if ok {
			t.Fatalf("deleted file reported: %s", path)
		}
	case <-time.After(600 * time.Millisecond):
	}
}

func TestFolderWatcher_StopClosesStream(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	paths, err := w.Watch(context.Background(), dir)
	require.NoError(t, err)

	require.NoError(t, w.Stop())

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream did not close after Stop")
	}
}

func TestFolderWatcher_WatchMissingDir(t *testing.T) {
	w := newTestWatcher(t)

	_, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
