package trace

import "context"

// Repo is the append-only trace store collaborator.
// Implementations must return traces for a session in timestamp order and
// must never mutate a persisted trace.
type Repo interface {
	// Append persists one trace and returns its store sequence number.
	Append(ctx context.Context, tr Trace) (int64, error)

	// ListBySession returns all traces for a session in timestamp order.
	ListBySession(ctx context.Context, sessionID string) ([]Trace, error)
}
