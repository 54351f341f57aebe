package driving

import "context"

// ChatService submits user queries and records the exchange in the
// conversation log.
type ChatService interface {
	// Send appends a user entry, dispatches the query and appends
	// exactly one terminal entry (assistant or error). It blocks until
	// the exchange completes; callers needing asynchrony run it from
	// their own task. Returns domain.ErrEmptyQuery for blank input.
	Send(ctx context.Context, query string) error

	// Loading reports whether at least one query is in flight.
	Loading() bool
}
