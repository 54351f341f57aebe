package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo documents into the library",
	Long: `Asks the backend to load its bundled sample documents, then
refreshes the local catalog. Useful for trying OpenSquare out before
uploading real data.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	cmd.Println("Loading demo documents...")

	if err := documentService.Seed(context.Background()); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	cmd.Printf("Done. The library now has %d documents.\n", len(documentService.Documents()))
	return nil
}
