package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask a question about the document library",
	Long: `Sends a single question to the backend and prints the answer
with its source documents. For a multi-turn conversation, launch the
interactive UI instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil || conversation == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.Send(context.Background(), args[0]); err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return errors.New("question must not be empty")
		}
		return fmt.Errorf("chat failed: %w", err)
	}

	entries := conversation.Entries()
	if len(entries) == 0 {
		return errors.New("no response recorded")
	}

	// The reply is the newest non-user entry.
	reply := entries[len(entries)-1]
	if reply.Kind == domain.EntryError {
		return errors.New(reply.Content)
	}

	cmd.Println(reply.Content)

	if len(reply.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range reply.Sources {
			cmd.Printf("  - %s (%s)\n", src.Title, src.Organization)
		}
	}

	return nil
}
