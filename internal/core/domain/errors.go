package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates a chat query was empty after trimming.
	ErrEmptyQuery = errors.New("empty query")

	// ErrBackendOffline indicates dispatch was attempted while the
	// backend is known unreachable.
	ErrBackendOffline = errors.New("backend offline")

	// ErrUploadInProgress indicates an upload is already running.
	// Transfers are serialized; retries are new transfers.
	ErrUploadInProgress = errors.New("upload already in progress")

	// ErrNoFile indicates no file was provided for upload.
	ErrNoFile = errors.New("no file provided")

	// ErrBackendUnavailable indicates the backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// BackendError is an application-level failure reported by the backend
// itself: the server responded, but with a non-success status. Message
// carries the server-supplied text, which callers prefer over generic
// transport wording when surfacing the failure.
type BackendError struct {
	// Message is the server-supplied explanation.
	Message string

	// StatusCode is the HTTP status, if applicable.
	StatusCode int
}

func (e *BackendError) Error() string {
	return e.Message
}
