// Package cli implements the command-line interface for OpenSquare.
// Commands talk to the core services through driving ports; the
// concrete wiring happens in cmd/opensquare.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands depend on, injected by the composition root.
var (
	chatService     driving.ChatService
	conversation    driving.ConversationReader
	documentService driving.DocumentService
	uploadService   driving.UploadService
	healthService   driving.HealthService
	configStore     driven.ConfigStore
	folderWatcher   driven.DropFolderWatcher
)

// Services bundles everything the CLI needs to run.
type Services struct {
	Chat         driving.ChatService
	Conversation driving.ConversationReader
	Documents    driving.DocumentService
	Uploads      driving.UploadService
	Health       driving.HealthService
	Config       driven.ConfigStore
	Watcher      driven.DropFolderWatcher
}

// SetServices injects service implementations into the CLI commands.
func SetServices(s Services) {
	chatService = s.Chat
	conversation = s.Conversation
	documentService = s.Documents
	uploadService = s.Uploads
	healthService = s.Health
	configStore = s.Config
	folderWatcher = s.Watcher
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "opensquare",
	Short: "Chat with your organization's document library",
	Long: `OpenSquare is a client for querying public-sector documents.

Ask questions in plain language, upload budgets, reports and datasets,
and browse the document catalog. Run without a subcommand to launch
the interactive terminal UI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
