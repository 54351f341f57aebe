package driven

import "context"

// DropFolderWatcher reports documents placed into a watched folder.
type DropFolderWatcher interface {
	// Watch starts monitoring dir and returns a stream of file paths
	// that have finished being written. The stream closes when ctx is
	// cancelled or the watcher is stopped.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Stop releases the watcher's resources.
	Stop() error
}
