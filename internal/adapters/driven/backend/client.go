// Package backend provides the HTTP adapter for the OpenSquare API.
// It implements driven.BackendClient over JSON endpoints, including
// multipart uploads with byte-level progress reporting.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.BackendClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:5000"
	DefaultTimeout       = 120 * time.Second
	DefaultUploadTimeout = 10 * time.Minute
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the API base URL (default: http://localhost:5000).
	BaseURL string

	// Timeout is the request timeout for JSON calls (default: 120s).
	Timeout time.Duration

	// UploadTimeout bounds multipart transfers (default: 10m).
	UploadTimeout time.Duration
}

// Client talks to the OpenSquare backend API.
type Client struct {
	client       *http.Client
	uploadClient *http.Client
	baseURL      string
}

// healthResponse is the /api/health response format.
type healthResponse struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp string            `json:"timestamp"`
}

// documentsResponse is the /api/documents response format.
type documentsResponse struct {
	Status    string            `json:"status"`
	Count     int               `json:"count"`
	Documents []documentPayload `json:"documents"`
}

// documentPayload is one catalog item as serialized by the backend.
// Year arrives as either a JSON number or a string depending on how
// the document was ingested, so it is normalized on decode.
type documentPayload struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Organization string      `json:"organization"`
	DocType      string      `json:"doc_type"`
	Year         flexibleInt `json:"year"`
	UploadedAt   string      `json:"uploaded_at"`
}

// chatRequest is the /api/chat request format.
type chatRequest struct {
	Query string `json:"query"`
}

// chatResponse is the /api/chat response format.
type chatResponse struct {
	Status  string            `json:"status"`
	Answer  string            `json:"answer"`
	Sources []citationPayload `json:"sources"`
	Message string            `json:"message"`
}

// citationPayload is one source reference in a chat response.
type citationPayload struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
}

// uploadResponse is the /api/upload response format.
type uploadResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Filename   string `json:"filename"`
	Size       string `json:"size"`
	DocumentID string `json:"document_id"`
}

// statusResponse is the generic success/failure envelope.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewClient creates a new backend API client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}

	return &Client{
		client:       &http.Client{Timeout: cfg.Timeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
		baseURL:      cfg.BaseURL,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health probes the /api/health endpoint.
func (c *Client) Health(ctx context.Context) (*domain.HealthReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &domain.HealthReport{
		Status:    health.Status,
		Services:  health.Services,
		Timestamp: health.Timestamp,
	}, nil
}

// ListDocuments fetches the full catalog from /api/documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var list documentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if list.Status != "success" {
		return nil, &domain.BackendError{Message: "document listing failed", StatusCode: resp.StatusCode}
	}

	docs := make([]domain.Document, 0, len(list.Documents))
	for _, p := range list.Documents {
		docs = append(docs, domain.Document{
			ID:           p.ID,
			Title:        p.Title,
			Organization: p.Organization,
			DocType:      p.DocType,
			Year:         int(p.Year),
			UploadedAt:   parseTimestamp(p.UploadedAt),
		})
	}
	return docs, nil
}

// Chat submits a query to /api/chat and returns the answer.
func (c *Client) Chat(ctx context.Context, query string) (*domain.ChatAnswer, error) {
	jsonBody, err := json.Marshal(chatRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if chat.Status != "success" {
		return nil, serverError(chat.Message, resp.StatusCode)
	}

	sources := make([]domain.Citation, 0, len(chat.Sources))
	for _, s := range chat.Sources {
		sources = append(sources, domain.Citation{
			Title:        s.Title,
			Organization: s.Organization,
		})
	}

	return &domain.ChatAnswer{Answer: chat.Answer, Sources: sources}, nil
}

// UploadDocument sends one file to /api/upload as a multipart request,
// reporting byte progress through req.OnProgress as the body streams.
func (c *Client) UploadDocument(ctx context.Context, upload driven.UploadRequest) (*driven.UploadResult, error) {
	body, contentType, err := buildMultipartBody(upload)
	if err != nil {
		return nil, err
	}

	reader := newProgressReader(bytes.NewReader(body), int64(len(body)), upload.OnProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.BackendError{
				Message:    fmt.Sprintf("upload rejected (status %d)", resp.StatusCode),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Status != "success" {
		return nil, serverError(result.Message, resp.StatusCode)
	}

	return &driven.UploadResult{
		Filename:   result.Filename,
		Size:       result.Size,
		DocumentID: result.DocumentID,
	}, nil
}

// SeedDemoData asks the backend to load sample documents via /api/init.
func (c *Client) SeedDemoData(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/init", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if status.Status != "success" {
		return serverError(status.Message, resp.StatusCode)
	}
	return nil
}

// buildMultipartBody assembles the file and its metadata fields into a
// multipart payload. The whole body is buffered so the request has a
// known length and progress maps cleanly onto bytes written.
func buildMultipartBody(upload driven.UploadRequest) ([]byte, string, error) {
	file, err := os.Open(upload.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(upload.Path))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}

	fields := map[string]string{
		"organization": upload.Metadata.Organization,
		"doc_type":     upload.Metadata.DocType,
		"year":         strconv.Itoa(upload.Metadata.Year),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

// checkStatus converts a non-2xx response into a BackendError,
// preserving the server-supplied message when the body carries one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err == nil && status.Message != "" {
		return &domain.BackendError{Message: status.Message, StatusCode: resp.StatusCode}
	}
	return &domain.BackendError{
		Message:    fmt.Sprintf("backend returned status %d", resp.StatusCode),
		StatusCode: resp.StatusCode,
	}
}

// serverError builds a BackendError with a fallback message for
// responses that omit one.
func serverError(message string, statusCode int) *domain.BackendError {
	if message == "" {
		message = "the backend reported an error"
	}
	return &domain.BackendError{Message: message, StatusCode: statusCode}
}

// timestampLayouts are the formats the backend emits for uploaded_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp converts a backend timestamp to time.Time, returning
// the zero value for unrecognized formats.
func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// flexibleInt decodes a JSON value that may be a number or a numeric
// string, as the backend stores form-submitted years verbatim.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexibleInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleInt(n)
	return nil
}
