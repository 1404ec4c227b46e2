package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExternalEvent is a timestamped event from outside the tutor, e.g. a code
// commit, supplied by the caller for correlation.
type ExternalEvent struct {
	ID        string
	Kind      string
	Timestamp time.Time
}

// Match pairs an external event with the nearest trace inside the window.
type Match struct {
	Event   ExternalEvent
	TraceID uuid.UUID
	// Offset is event time minus trace time; negative when the event
	// precedes the trace.
	Offset time.Duration
}

// Correlation is the read-only result of correlating external events with a
// session's traces.
type Correlation struct {
	SessionID    string
	Matches      []Match
	Uncorrelated []ExternalEvent
}

// Correlate matches each event to the nearest trace within window.
// Read-only: stored traces are never mutated.
func (r *Reconstructor) Correlate(ctx context.Context, sessionID string, events []ExternalEvent, window time.Duration) (Correlation, error) {
	traces, err := r.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return Correlation{}, fmt.Errorf("list traces: %w", err)
	}

	out := Correlation{
		SessionID:    sessionID,
		Matches:      []Match{},
		Uncorrelated: []ExternalEvent{},
	}

	for _, ev := range events {
		idx, offset, ok := nearestTrace(traces, ev.Timestamp, window)
		if !ok {
			out.Uncorrelated = append(out.Uncorrelated, ev)
			continue
		}
		out.Matches = append(out.Matches, Match{
			Event:   ev,
			TraceID: traces[idx].ID,
			Offset:  offset,
		})
	}
	return out, nil
}

func nearestTrace(traces []Trace, at time.Time, window time.Duration) (int, time.Duration, bool) {
	bestIdx := -1
	var bestAbs time.Duration
	var bestOffset time.Duration

	for i, tr := range traces {
		offset := at.Sub(tr.Timestamp)
		abs := offset
		if abs < 0 {
			abs = -abs
		}
		if abs > window {
			continue
		}
		if bestIdx == -1 || abs < bestAbs {
			bestIdx, bestAbs, bestOffset = i, abs, offset
		}
	}
	if bestIdx == -1 {
		return 0, 0, false
	}
	return bestIdx, bestOffset, true
}
