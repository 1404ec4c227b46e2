package trace

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedTrace(t *testing.T, repo *MemRepo, session, state, strategy string, inv float64, at time.Time) Trace {
	t.Helper()
	tr := Trace{
		ID:            uuid.New(),
		SessionID:     session,
		Level:         LevelN4,
		Interaction:   InteractionPrompt,
		State:         state,
		AIInvolvement: inv,
		Metadata:      map[string]string{MetaStrategy: strategy},
		Timestamp:     at,
	}
	if _, err := repo.Append(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestReconstructPath(t *testing.T) {
	repo := NewMemRepo()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	seedTrace(t, repo, "s1", "exploration", "socratic-questioning", 0.1, base)
	seedTrace(t, repo, "s1", "planning", "socratic-questioning", 0.2, base.Add(time.Minute))
	seedTrace(t, repo, "s1", "planning", "guided-hints", 0.5, base.Add(2*time.Minute))
	seedTrace(t, repo, "s1", "implementation", "guided-hints", 0.6, base.Add(3*time.Minute))

	p, err := NewReconstructor(repo).ReconstructPath(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}

	if p.TotalTraces != 4 {
		t.Errorf("TotalTraces = %d, want 4", p.TotalTraces)
	}
	if len(p.AIDependency) != p.TotalTraces {
		t.Errorf("len(AIDependency) = %d, want TotalTraces %d", len(p.AIDependency), p.TotalTraces)
	}

	wantStates := []string{"exploration", "planning", "planning", "implementation"}
	if !reflect.DeepEqual(p.States, wantStates) {
		t.Errorf("States = %v, want %v", p.States, wantStates)
	}

	if len(p.Transitions) != 2 {
		t.Fatalf("Transitions = %v, want 2 entries", p.Transitions)
	}
	first := p.Transitions[0]
	if first.From != "exploration" || first.To != "planning" || first.Index != 1 {
		t.Errorf("first transition = %+v", first)
	}
	if !first.Timestamp.Equal(base.Add(time.Minute)) {
		t.Errorf("transition timestamp = %v", first.Timestamp)
	}

	if !reflect.DeepEqual(p.StrategyChanges, []int{2}) {
		t.Errorf("StrategyChanges = %v, want [2]", p.StrategyChanges)
	}
}

func TestReconstructPath_Idempotent(t *testing.T) {
	repo := NewMemRepo()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedTrace(t, repo, "s1", "exploration", "a", 0.3, base)
	seedTrace(t, repo, "s1", "debugging", "b", 0.9, base.Add(time.Second))

	r := NewReconstructor(repo)
	first, err := r.ReconstructPath(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.ReconstructPath(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reconstruction not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestReconstructPath_EmptySession(t *testing.T) {
	p, err := NewReconstructor(NewMemRepo()).ReconstructPath(context.Background(), "none")
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalTraces != 0 || len(p.AIDependency) != 0 || len(p.Transitions) != 0 {
		t.Errorf("empty session path = %+v", p)
	}
}
