package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pcanas/mentat/internal/risk"
)

// RiskRepo implements risk.Repo on the risks table.
type RiskRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Append persists one detected risk.
func (r *RiskRepo) Append(ctx context.Context, rk risk.Risk) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	evidence, err := json.Marshal(rk.Evidence)
	if err != nil {
		return fmt.Errorf("marshal risk evidence: %w", err)
	}
	recs, err := json.Marshal(rk.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal risk recommendations: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO risks (id, seq, session_id, type, level, dimension,
			description, evidence, recommendations, resolved, detected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rk.ID.String(), seqNum, rk.SessionID, rk.Type, rk.Level.String(),
		string(rk.Dimension), rk.Description, string(evidence), string(recs),
		rk.Resolved, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

// ListBySession returns all risks detected for a session in detection order.
func (r *RiskRepo) ListBySession(ctx context.Context, sessionID string) ([]risk.Risk, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, type, level, dimension, description,
			evidence, recommendations, resolved
		FROM risks WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query risks: %w", err)
	}
	defer rows.Close()

	var out []risk.Risk
	for rows.Next() {
		var (
			rk       risk.Risk
			id       string
			level    string
			dim      string
			evidence string
			recs     string
		)
		if err := rows.Scan(&id, &rk.SessionID, &rk.Type, &level, &dim,
			&rk.Description, &evidence, &recs, &rk.Resolved); err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		if rk.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse risk id %q: %w", id, err)
		}
		if rk.Level, err = risk.ParseLevel(level); err != nil {
			return nil, err
		}
		rk.Dimension = risk.Dimension(dim)
		if err := json.Unmarshal([]byte(evidence), &rk.Evidence); err != nil {
			return nil, fmt.Errorf("unmarshal risk evidence: %w", err)
		}
		if err := json.Unmarshal([]byte(recs), &rk.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal risk recommendations: %w", err)
		}
		out = append(out, rk)
	}
	return out, rows.Err()
}

// Resolve marks a stored risk as addressed.
func (r *RiskRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE risks SET resolved = 1 WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("resolve risk: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("risk %s not found", id)
	}
	return nil
}
