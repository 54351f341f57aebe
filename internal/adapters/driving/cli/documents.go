package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents in the library",
	Long:  `Fetches the document catalog from the backend and prints it.`,
	RunE:  runDocuments,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output catalog as JSON")
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("failed to fetch documents: %w", err)
	}

	docs := documentService.Documents()

	if documentsJSON {
		return outputDocumentsJSON(cmd, docs)
	}
	return outputDocumentsTable(cmd, docs)
}

func outputDocumentsJSON(cmd *cobra.Command, docs []domain.Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputDocumentsTable(cmd *cobra.Command, docs []domain.Document) error {
	if len(docs) == 0 {
		cmd.Println("No documents in the library. Use 'opensquare upload' or 'opensquare seed' to add some.")
		return nil
	}

	cmd.Printf("Documents (%d):\n", len(docs))
	cmd.Println()
	for i, doc := range docs {
		cmd.Printf("  [%d] %s\n", i+1, doc.Title)
		cmd.Printf("      %s | %s | %d\n", doc.Organization, doc.DocType, doc.Year)
	}

	return nil
}
