package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pcanas/mentat/internal/llm"
)

// LLMEvent is one stored LLM request record.
type LLMEvent struct {
	Seq          int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	CreatedAt    time.Time
}

// LLMEventRepo records LLM requests. It implements llm.EventSink.
type LLMEventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// AppendLLMRequest stores one LLM request event.
func (r *LLMEventRepo) AppendLLMRequest(ctx context.Context, ev llm.Event) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events (seq, provider, model, purpose, input_tokens,
			output_tokens, latency_ms, success, error_message, request_body,
			response_body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ev.Provider, ev.Model, ev.Purpose, ev.InputTokens,
		ev.OutputTokens, ev.LatencyMs, ev.Success, ev.ErrorMessage,
		ev.RequestBody, ev.ResponseBody, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert llm event: %w", err)
	}
	return nil
}

// List returns the most recent LLM events, newest first, up to limit.
func (r *LLMEventRepo) List(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body, created_at
		FROM llm_events ORDER BY seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		ev, err := scanLLMEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Get returns one LLM event by sequence number.
func (r *LLMEventRepo) Get(ctx context.Context, seq int64) (LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT seq, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body, created_at
		FROM llm_events WHERE seq = ?`,
		seq,
	)
	ev, err := scanLLMEvent(row.Scan)
	if err == sql.ErrNoRows {
		return LLMEvent{}, fmt.Errorf("llm event %d not found", seq)
	}
	return ev, err
}

func scanLLMEvent(scan func(...any) error) (LLMEvent, error) {
	var (
		ev LLMEvent
		ts string
	)
	err := scan(&ev.Seq, &ev.Provider, &ev.Model, &ev.Purpose, &ev.InputTokens,
		&ev.OutputTokens, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage,
		&ev.RequestBody, &ev.ResponseBody, &ts)
	if err != nil {
		return LLMEvent{}, err
	}
	ev.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return LLMEvent{}, fmt.Errorf("parse llm event timestamp %q: %w", ts, err)
	}
	return ev, nil
}
