package trace

import (
	"context"
	"sort"
	"sync"
)

// MemRepo is an in-memory Repo. Used in tests and as a store-free fallback.
type MemRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[string][]memRow
}

type memRow struct {
	seq int64
	tr  Trace
}

// NewMemRepo creates an empty in-memory repo.
func NewMemRepo() *MemRepo {
	return &MemRepo{rows: make(map[string][]memRow)}
}

func (m *MemRepo) Append(_ context.Context, tr Trace) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.rows[tr.SessionID] = append(m.rows[tr.SessionID], memRow{seq: m.seq, tr: tr})
	return m.seq, nil
}

func (m *MemRepo) ListBySession(_ context.Context, sessionID string) ([]Trace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[sessionID]
	sorted := make([]memRow, len(rows))
	copy(sorted, rows)
	// Timestamp order; append sequence breaks ties (last-write-wins
	// ordering is resolved here, at the store layer).
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].tr.Timestamp.Equal(sorted[j].tr.Timestamp) {
			return sorted[i].seq < sorted[j].seq
		}
		return sorted[i].tr.Timestamp.Before(sorted[j].tr.Timestamp)
	})

	out := make([]Trace, len(sorted))
	for i, r := range sorted {
		out[i] = r.tr
	}
	return out, nil
}
