package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

func tempDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o600))
	return path
}

func resetUploadFlags() {
	uploadOrganization = ""
	uploadDocType = ""
	uploadYear = 0
}

func TestUploadCmd_Success(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	path := tempDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{path}, mocks.uploads.paths)
	assert.Contains(t, buf.String(), "Uploading... 50%")
	assert.Contains(t, buf.String(), "Upload complete")
}

func TestUploadCmd_MetadataFlags(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	path := tempDocument(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path, "--organization", "Ministry of Health", "--type", "Budget", "--year", "2024"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "Ministry of Health", mocks.uploads.metadata.Organization)
	assert.Equal(t, "Budget", mocks.uploads.metadata.DocType)
	assert.Equal(t, 2024, mocks.uploads.metadata.Year)
}

func TestUploadCmd_ConfiguredDefaults(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	path := tempDocument(t)

	require.NoError(t, mocks.config.Set("upload.organization", "Ministry of Finance"))
	require.NoError(t, mocks.config.Set("upload.year", 2023))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"upload", path, "--type", "Report"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	// Flags win, config fills the rest.
	assert.Equal(t, "Ministry of Finance", mocks.uploads.metadata.Organization)
	assert.Equal(t, "Report", mocks.uploads.metadata.DocType)
	assert.Equal(t, 2023, mocks.uploads.metadata.Year)
}

func TestUploadCmd_TransferFailure(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.uploads.events = []domain.TransferEvent{
		{Status: domain.TransferFailed, Message: "File type not allowed"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", tempDocument(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "File type not allowed")
}

func TestUploadCmd_MissingFile(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.uploads.uploadErr = domain.ErrNoFile

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", "absent.pdf"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestUploadCmd_AlreadyInProgress(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.uploads.uploadErr = domain.ErrUploadInProgress

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"upload", tempDocument(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		resetUploadFlags()
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")
}
