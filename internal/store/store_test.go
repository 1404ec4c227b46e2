package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pcanas/mentat/internal/llm"
	"github.com/pcanas/mentat/internal/risk"
	"github.com/pcanas/mentat/internal/trace"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func testTrace(sessionID string, ts time.Time) trace.Trace {
	return trace.Trace{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Level:         trace.LevelN4,
		Interaction:   trace.InteractionPrompt,
		State:         "implementation",
		Intent:        "question",
		Content:       "how do slices grow?",
		AIInvolvement: 0.3,
		Metadata:      map[string]string{trace.MetaStrategy: "socratic-questioning"},
		Timestamp:     ts,
	}
}

func TestTraceRepo_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.TraceRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	seq1, err := repo.Append(ctx, testTrace("s1", base))
	if err != nil {
		t.Fatal(err)
	}
	seq2, err := repo.Append(ctx, testTrace("s1", base.Add(time.Second)))
	if err != nil {
		t.Fatal(err)
	}
	if seq2 <= seq1 {
		t.Errorf("sequence not increasing: %d then %d", seq1, seq2)
	}
	if _, err := repo.Append(ctx, testTrace("other", base)); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListBySession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("listed %d traces, want 2", len(got))
	}
	if !got[0].Timestamp.Before(got[1].Timestamp) {
		t.Error("traces not in timestamp order")
	}
	if got[0].Metadata[trace.MetaStrategy] != "socratic-questioning" {
		t.Errorf("metadata lost: %v", got[0].Metadata)
	}
}

func TestTraceRepo_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	tr := testTrace("s1", time.Now())
	tr.SessionID = ""
	if _, err := s.TraceRepo().Append(context.Background(), tr); err == nil {
		t.Error("invalid trace must not be persisted")
	}
}

func TestRiskRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.RiskRepo()
	ctx := context.Background()

	rk, err := risk.New("s1", "ai-dependency", risk.LevelHigh, risk.DimCognitive, "mean involvement 0.85")
	if err != nil {
		t.Fatal(err)
	}
	rk.Evidence = []string{"t1", "t2"}
	rk.Recommendations = []string{"shift toward socratic questioning"}

	if err := repo.Append(ctx, rk); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListBySession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("listed %d risks, want 1", len(got))
	}
	if got[0].Level != risk.LevelHigh || got[0].Dimension != risk.DimCognitive {
		t.Errorf("risk = %+v", got[0])
	}
	if len(got[0].Evidence) != 2 || len(got[0].Recommendations) != 1 {
		t.Errorf("evidence/recommendations lost: %+v", got[0])
	}

	if err := repo.Resolve(ctx, rk.ID); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.ListBySession(ctx, "s1")
	if !got[0].Resolved {
		t.Error("risk not marked resolved")
	}

	if err := repo.Resolve(ctx, uuid.New()); err == nil {
		t.Error("resolving an unknown risk must error")
	}
}

func TestLLMEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.LLMEventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, llm.Event{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "tutor-socratic-questioning",
		InputTokens:  200,
		OutputTokens: 80,
		LatencyMs:    120,
		Success:      true,
		RequestBody:  "[user]\nhow do slices grow?",
		ResponseBody: `{"response":"what does append return?"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, llm.Event{Provider: "mock", Model: "mock", Purpose: "tutor-guided-hints", ErrorMessage: "rate limited"}); err != nil {
		t.Fatal(err)
	}

	events, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("listed %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Purpose != "tutor-guided-hints" {
		t.Errorf("order wrong: %+v", events[0])
	}

	got, err := repo.Get(ctx, events[1].Seq)
	if err != nil {
		t.Fatal(err)
	}
	if got.Purpose != "tutor-socratic-questioning" || !got.Success {
		t.Errorf("event = %+v", got)
	}

	if _, err := repo.Get(ctx, 99999); err == nil {
		t.Error("unknown sequence must error")
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seq1, err := s.TraceRepo().Append(ctx, testTrace("s1", time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RiskRepo().Append(ctx, risk.Must("s1", "t", risk.LevelLow, risk.DimTechnical, "d")); err != nil {
		t.Fatal(err)
	}
	seq2, err := s.TraceRepo().Append(ctx, testTrace("s1", time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	// The risk consumed a sequence number between the two traces.
	if seq2 != seq1+2 {
		t.Errorf("expected shared counter: first=%d second=%d", seq1, seq2)
	}
}
