// Package trace records the cognitive history of tutoring sessions as
// immutable N4 traces and derives longitudinal projections from it.
package trace

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LevelN4 marks the most detailed interaction record level: cognitive intent
// and state captured per interaction.
const LevelN4 = "N4"

// MaxContentBytes bounds trace content; longer content is truncated.
const MaxContentBytes = 32 * 1024

// InteractionType categorizes what kind of interaction a trace records.
type InteractionType string

const (
	InteractionPrompt        InteractionType = "prompt"
	InteractionHintRequest   InteractionType = "hint-request"
	InteractionJustification InteractionType = "justification"
	InteractionDecision      InteractionType = "decision"
	InteractionBlockEvent    InteractionType = "block-event"
	InteractionValidation    InteractionType = "validation"
)

// Trace is one N4 cognitive trace. Immutable once persisted.
type Trace struct {
	ID          uuid.UUID
	SessionID   string
	Level       string
	Interaction InteractionType
	State       string // reason.CognitiveState value
	Intent      string // free-form classification tag
	Content     string
	// AIInvolvement estimates how much of the visible output came from
	// generated content, in [0,1].
	AIInvolvement float64
	Blocked       bool
	Metadata      map[string]string
	Timestamp     time.Time
}

// MetaStrategy is the metadata key recording the dispatched strategy; the
// strategy-change projection reads it back.
const MetaStrategy = "strategy"

// MetaGovernanceRule is the metadata key recording the governance rule that
// produced the decision for this interaction (the audit record).
const MetaGovernanceRule = "governance_rule"

// MetaAuditNote carries warning-level audit annotations, e.g. a policy
// fallback.
const MetaAuditNote = "audit_note"

// Validate checks the construction invariants.
func (tr Trace) Validate() error {
	if tr.SessionID == "" {
		return fmt.Errorf("trace: session id is required")
	}
	if tr.Level != LevelN4 {
		return fmt.Errorf("trace: level must be %q, got %q", LevelN4, tr.Level)
	}
	if tr.AIInvolvement < 0 || tr.AIInvolvement > 1 {
		return fmt.Errorf("trace: ai involvement %v outside [0,1]", tr.AIInvolvement)
	}
	return nil
}

// Sequence is the ordered, append-only view of one session's traces,
// ordered by timestamp (sequence number breaks ties at the store layer).
type Sequence struct {
	SessionID string
	Traces    []Trace
}

// Len returns the number of traces in the sequence.
func (s Sequence) Len() int { return len(s.Traces) }
