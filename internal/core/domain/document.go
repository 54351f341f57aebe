package domain

import "time"

// Document represents an indexed document as reported by the backend.
// The client never parses or mutates documents; the list is replaced
// wholesale on each successful fetch.
type Document struct {
	// ID is the backend-assigned identifier.
	ID string

	// Title is the human-readable title, usually the original filename.
	Title string

	// Organization is the publishing organization.
	Organization string

	// DocType is the document category (budget, report, ...).
	DocType string

	// Year is the fiscal year the document covers.
	Year int

	// UploadedAt is when the document was indexed.
	UploadedAt time.Time
}

// HealthReport is the backend's detailed health response.
type HealthReport struct {
	// Status is the overall marker; "success" means healthy.
	Status string

	// Services maps service names (api, search, ai) to their state.
	Services map[string]string

	// Timestamp is the server-side time of the report.
	Timestamp string
}

// Healthy reports whether the backend declared itself available.
func (r *HealthReport) Healthy() bool {
	return r != nil && r.Status == "success"
}
