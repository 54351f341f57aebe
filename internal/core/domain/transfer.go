package domain

// TransferStatus is the lifecycle state of an upload transfer.
type TransferStatus string

const (
	// TransferPending means the transfer is created but not dispatched.
	TransferPending TransferStatus = "pending"

	// TransferInProgress means bytes are being sent.
	TransferInProgress TransferStatus = "in-progress"

	// TransferSucceeded means the backend accepted and indexed the file.
	TransferSucceeded TransferStatus = "succeeded"

	// TransferFailed means the transfer ended in an error.
	TransferFailed TransferStatus = "failed"
)

// Terminal reports whether the status is a final state.
// Terminal transfers are disposed of; retries are new transfers.
func (s TransferStatus) Terminal() bool {
	return s == TransferSucceeded || s == TransferFailed
}

// UploadMetadata is the fixed metadata attached to an upload.
type UploadMetadata struct {
	Organization string
	DocType      string
	Year         int
}

// TransferEvent is one element of the finite progress stream emitted
// while a transfer runs. The stream carries zero or more progress
// events and ends with exactly one terminal event.
type TransferEvent struct {
	// Percent is the monotonic 0-100 progress value.
	Percent int

	// Status is the transfer state at the time of the event.
	Status TransferStatus

	// Message carries the failure text for a failed terminal event.
	Message string
}

// UploadTransfer tracks a single in-flight file upload.
type UploadTransfer struct {
	// ID identifies this transfer attempt.
	ID string

	// Path is the local path of the file being sent.
	Path string

	// Filename is the base name presented to the backend.
	Filename string

	// Size is the file size in bytes.
	Size int64

	// Metadata is the organization/type/year triple sent with the file.
	Metadata UploadMetadata

	// ProgressPercent is 0-100, monotonically non-decreasing for the
	// lifetime of the transfer.
	ProgressPercent int

	// Status is the current lifecycle state.
	Status TransferStatus
}
