package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pcanas/mentat/internal/trace"
)

// TraceRepo implements trace.Repo on the traces table.
type TraceRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Append persists one trace and returns its global sequence number.
// The trace is validated first; persisting a malformed trace would poison
// every projection built on the sequence.
func (r *TraceRepo) Append(ctx context.Context, tr trace.Trace) (int64, error) {
	if err := tr.Validate(); err != nil {
		return 0, err
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	meta, err := json.Marshal(tr.Metadata)
	if err != nil {
		return 0, fmt.Errorf("marshal trace metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO traces (id, seq, session_id, level, interaction, state, intent,
			content, ai_involvement, blocked, metadata, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.ID.String(), seqNum, tr.SessionID, tr.Level, string(tr.Interaction),
		tr.State, tr.Intent, tr.Content, tr.AIInvolvement, tr.Blocked,
		string(meta), tr.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert trace: %w", err)
	}
	return seqNum, nil
}

// ListBySession returns all traces for a session in timestamp order, with
// the sequence number breaking ties.
func (r *TraceRepo) ListBySession(ctx context.Context, sessionID string) ([]trace.Trace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, level, interaction, state, intent, content,
			ai_involvement, blocked, metadata, timestamp
		FROM traces WHERE session_id = ? ORDER BY timestamp, seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer rows.Close()

	var out []trace.Trace
	for rows.Next() {
		var (
			tr          trace.Trace
			id          string
			interaction string
			meta        string
			ts          string
		)
		if err := rows.Scan(&id, &tr.SessionID, &tr.Level, &interaction, &tr.State,
			&tr.Intent, &tr.Content, &tr.AIInvolvement, &tr.Blocked, &meta, &ts); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		if tr.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse trace id %q: %w", id, err)
		}
		tr.Interaction = trace.InteractionType(interaction)
		if err := json.Unmarshal([]byte(meta), &tr.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal trace metadata: %w", err)
		}
		if tr.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse trace timestamp %q: %w", ts, err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
