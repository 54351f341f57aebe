package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Upload documents dropped into a folder",
	Long: `Watches a folder and uploads every supported document placed
in it. With no argument, the folder comes from the watch.folder config
key. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}
	if folderWatcher == nil {
		return errors.New("folder watcher not configured")
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else if configStore != nil {
		dir = configStore.GetString("watch.folder")
	}
	if dir == "" {
		return errors.New("no folder given and watch.folder is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer folderWatcher.Stop()

	paths, err := folderWatcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for documents. Press Ctrl+C to stop.\n", dir)

	for path := range paths {
		uploadFromWatch(ctx, cmd, path)
	}

	cmd.Println("Stopped.")
	return nil
}

// uploadFromWatch runs one transfer to completion. Failures are
// reported and the watch continues.
func uploadFromWatch(ctx context.Context, cmd *cobra.Command, path string) {
	cmd.Printf("Uploading %s...\n", path)

	events, err := uploadService.Upload(ctx, path)
	if err != nil {
		cmd.Printf("  skipped: %v\n", err)
		return
	}

	for ev := range events {
		switch ev.Status {
		case domain.TransferSucceeded:
			cmd.Println("  done")
		case domain.TransferFailed:
			cmd.Printf("  failed: %s\n", ev.Message)
		default:
			logger.Debug("watch upload progress %d%%", ev.Percent)
		}
	}
}
