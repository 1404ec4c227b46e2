package trace

import (
	"context"
	"fmt"
	"time"
)

// Transition records one cognitive-state change between adjacent traces.
type Transition struct {
	From      string
	To        string
	Index     int // index of the trace where the new state appears
	Timestamp time.Time
}

// Path is the reconstructed cognitive path of a session.
// All fields are derived from the stored sequence; nothing here is persisted.
type Path struct {
	SessionID string

	// States is the cognitive state of every trace, in order.
	States []string

	// Transitions lists adjacent state changes.
	Transitions []Transition

	// AIDependency is the ai-involvement of every trace, in order.
	// Always the same length as TotalTraces.
	AIDependency []float64

	// StrategyChanges holds the indices where two consecutive traces carry
	// different dispatched strategies.
	StrategyChanges []int

	TotalTraces int
}

// Reconstructor derives read-side projections from stored traces.
type Reconstructor struct {
	repo Repo
}

// NewReconstructor creates a Reconstructor over the given repo.
func NewReconstructor(repo Repo) *Reconstructor {
	return &Reconstructor{repo: repo}
}

// ReconstructPath reads the full ordered sequence for a session and derives
// the cognitive path. Pure projection: calling it twice on the same stored
// data yields identical output.
func (r *Reconstructor) ReconstructPath(ctx context.Context, sessionID string) (Path, error) {
	traces, err := r.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return Path{}, fmt.Errorf("list traces: %w", err)
	}
	return BuildPath(sessionID, traces), nil
}

// BuildPath derives a Path from an ordered trace slice.
func BuildPath(sessionID string, traces []Trace) Path {
	p := Path{
		SessionID:       sessionID,
		States:          make([]string, 0, len(traces)),
		AIDependency:    make([]float64, 0, len(traces)),
		Transitions:     []Transition{},
		StrategyChanges: []int{},
		TotalTraces:     len(traces),
	}

	for i, tr := range traces {
		p.States = append(p.States, tr.State)
		p.AIDependency = append(p.AIDependency, tr.AIInvolvement)

		if i == 0 {
			continue
		}
		prev := traces[i-1]
		if tr.State != prev.State {
			p.Transitions = append(p.Transitions, Transition{
				From:      prev.State,
				To:        tr.State,
				Index:     i,
				Timestamp: tr.Timestamp,
			})
		}
		if s, ps := tr.Metadata[MetaStrategy], prev.Metadata[MetaStrategy]; s != ps {
			p.StrategyChanges = append(p.StrategyChanges, i)
		}
	}
	return p
}
