// Command opensquare is the OpenSquare client. Run without arguments
// it starts the terminal UI; subcommands cover one-shot chat, uploads,
// catalog listing and drop-folder watching.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opensquare/opensquare-cli/internal/adapters/driven/backend"
	"github.com/opensquare/opensquare-cli/internal/adapters/driven/config/file"
	"github.com/opensquare/opensquare-cli/internal/adapters/driven/watcher"
	"github.com/opensquare/opensquare-cli/internal/adapters/driving/cli"
	"github.com/opensquare/opensquare-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	configStore, err := file.NewConfigStore(filepath.Join(home, ".opensquare"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	baseURL := configStore.GetString("backend.url")
	client := backend.NewClient(backend.Config{BaseURL: baseURL})

	conversation := services.NewConversationLog()
	registry := services.NewDocumentRegistry(client)
	chat := services.NewChatOrchestrator(client, conversation)
	uploads := services.NewUploadManager(client, conversation, registry)
	health := services.NewHealthMonitor(client)

	folderWatcher, err := watcher.NewFolderWatcher(nil)
	if err != nil {
		return fmt.Errorf("creating folder watcher: %w", err)
	}
	defer folderWatcher.Stop()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chat:         chat,
		Conversation: conversation,
		Documents:    registry,
		Uploads:      uploads,
		Health:       health,
		Config:       configStore,
		Watcher:      folderWatcher,
	})

	return cli.Execute()
}
