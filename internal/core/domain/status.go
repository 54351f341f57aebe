package domain

// BackendStatus is the tri-state availability of the remote backend.
// It starts at StatusChecking and transitions only via health probes.
type BackendStatus string

const (
	// StatusChecking means no probe has completed yet.
	StatusChecking BackendStatus = "checking"

	// StatusOnline means the last probe reported a healthy backend.
	StatusOnline BackendStatus = "online"

	// StatusOffline means the last probe failed or reported unhealthy.
	StatusOffline BackendStatus = "offline"
)

// Dispatchable reports whether chat and upload dispatch is permitted.
// Dispatch is gated only when the backend is known unreachable.
func (s BackendStatus) Dispatchable() bool {
	return s != StatusOffline
}
