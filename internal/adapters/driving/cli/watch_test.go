package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// mockWatcher replays a fixed set of dropped paths.
type mockWatcher struct {
	paths   []string
	stopped bool
}

func (m *mockWatcher) Watch(_ context.Context, _ string) (<-chan string, error) {
	ch := make(chan string, len(m.paths))
	for _, p := range m.paths {
		ch <- p
	}
	close(ch)
	return ch, nil
}

func (m *mockWatcher) Stop() error {
	m.stopped = true
	return nil
}

func TestWatchCmd_UploadsDroppedFiles(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	watcher := &mockWatcher{paths: []string{"/drop/budget.pdf", "/drop/stats.csv"}}
	folderWatcher = watcher

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch", "/drop"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"/drop/budget.pdf", "/drop/stats.csv"}, mocks.uploads.paths)
	assert.Contains(t, buf.String(), "Watching /drop")
	assert.True(t, watcher.stopped)
}

func TestWatchCmd_ContinuesAfterFailure(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.uploads.events = []domain.TransferEvent{
		{Status: domain.TransferFailed, Message: "File type not allowed"},
	}
	folderWatcher = &mockWatcher{paths: []string{"/drop/a.pdf", "/drop/b.pdf"}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch", "/drop"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	// Both files were attempted despite the first failing.
	assert.Len(t, mocks.uploads.paths, 2)
	assert.Contains(t, buf.String(), "failed: File type not allowed")
}

func TestWatchCmd_FolderFromConfig(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, mocks.config.Set("watch.folder", "/configured/drop"))
	folderWatcher = &mockWatcher{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Watching /configured/drop")
}

func TestWatchCmd_NoFolderConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	folderWatcher = &mockWatcher{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watch.folder is not configured")
}

func TestWatchCmd_WatcherNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	folderWatcher = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch", "/drop"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "folder watcher not configured")
}
