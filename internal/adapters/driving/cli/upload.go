package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

var (
	uploadOrganization string
	uploadDocType      string
	uploadYear         int
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document to the library",
	Long: `Uploads a document to the backend for indexing.
Supported file types: pdf, xlsx, xls, csv.

Metadata flags override the defaults stored in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadOrganization, "organization", "o", "", "publishing organization")
	uploadCmd.Flags().StringVarP(&uploadDocType, "type", "t", "", "document type (e.g. Budget, Report)")
	uploadCmd.Flags().IntVarP(&uploadYear, "year", "y", 0, "publication year")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	uploadService.SetDefaultMetadata(uploadMetadata())

	events, err := uploadService.Upload(context.Background(), args[0])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFile):
			return fmt.Errorf("file not found: %s", args[0])
		case errors.Is(err, domain.ErrUploadInProgress):
			return errors.New("another upload is already in progress")
		default:
			return fmt.Errorf("upload failed: %w", err)
		}
	}

	for ev := range events {
		switch ev.Status {
		case domain.TransferInProgress:
			cmd.Printf("\rUploading... %d%%", ev.Percent)
		case domain.TransferSucceeded:
			cmd.Println("\rUploading... 100%")
			cmd.Println("Upload complete. The document is being indexed.")
		case domain.TransferFailed:
			cmd.Println()
			return fmt.Errorf("upload failed: %s", ev.Message)
		}
	}

	return nil
}

// uploadMetadata combines flag values with configured defaults, flags
// winning.
func uploadMetadata() domain.UploadMetadata {
	meta := domain.UploadMetadata{
		Organization: uploadOrganization,
		DocType:      uploadDocType,
		Year:         uploadYear,
	}

	if configStore != nil {
		if meta.Organization == "" {
			meta.Organization = configStore.GetString("upload.organization")
		}
		if meta.DocType == "" {
			meta.DocType = configStore.GetString("upload.doc_type")
		}
		if meta.Year == 0 {
			meta.Year = configStore.GetInt("upload.year")
		}
	}

	return meta
}
