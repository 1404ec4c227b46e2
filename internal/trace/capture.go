package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pcanas/mentat/internal/governance"
	"github.com/pcanas/mentat/internal/reason"
)

// Capturer builds and persists traces.
type Capturer struct {
	repo Repo
	now  func() time.Time // injectable clock for tests
}

// NewCapturer creates a Capturer over the given repo.
func NewCapturer(repo Repo) *Capturer {
	return &Capturer{repo: repo, now: time.Now}
}

// Capture builds one immutable trace from a classification and governance
// decision, persists it, and returns it. Blocked mirrors !decision.Allow;
// for blocked interactions the content is the deflection message, never
// generated help. The governance audit record rides in the metadata so
// every evaluation stays inspectable after the fact.
func (c *Capturer) Capture(
	ctx context.Context,
	sessionID string,
	cls reason.Classification,
	decision governance.Decision,
	content string,
	aiInvolvement float64,
	meta map[string]string,
) (Trace, error) {
	if len(content) > MaxContentBytes {
		content = content[:MaxContentBytes]
	}

	md := make(map[string]string, len(meta)+2)
	for k, v := range meta {
		md[k] = v
	}
	md[MetaGovernanceRule] = decision.RuleID
	if decision.AuditNote != "" {
		md[MetaAuditNote] = decision.AuditNote
	}

	tr := Trace{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Level:         LevelN4,
		Interaction:   interactionFor(cls, !decision.Allow),
		State:         string(cls.State),
		Intent:        cls.Intent,
		Content:       content,
		AIInvolvement: aiInvolvement,
		Blocked:       !decision.Allow,
		Metadata:      md,
		Timestamp:     c.now().UTC(),
	}
	if err := tr.Validate(); err != nil {
		return Trace{}, err
	}

	if _, err := c.repo.Append(ctx, tr); err != nil {
		return Trace{}, fmt.Errorf("append trace: %w", err)
	}
	return tr, nil
}

// interactionFor maps a classification to the interaction type.
// A block always records as a block event regardless of intent.
func interactionFor(cls reason.Classification, blocked bool) InteractionType {
	if blocked {
		return InteractionBlockEvent
	}
	switch cls.Intent {
	case "justification":
		return InteractionJustification
	case "decision":
		return InteractionDecision
	case "hint-request":
		return InteractionHintRequest
	}
	if cls.State == reason.StateValidation {
		return InteractionValidation
	}
	return InteractionPrompt
}
