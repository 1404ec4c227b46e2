package governance

import (
	"fmt"

	"github.com/pcanas/mentat/internal/reason"
)

// Decision is the outcome of evaluating a classification against a policy.
type Decision struct {
	Allow bool

	// Reason is empty when allowed. When blocked it carries the pedagogical
	// deflection message shown to the student, never a bare rejection.
	Reason string

	// RuleID names the governance rule that produced the decision, for the
	// audit record captured with the trace.
	RuleID string

	// AuditNote carries warning-level annotations (e.g. policy fallback).
	AuditNote string
}

const deflectionMessage = "I can't hand over a finished solution, but we can get there together. " +
	"Start by breaking the problem into smaller steps: what is the first piece " +
	"you could try on your own? Describe your plan or show what you have so far, " +
	"and I'll help you move forward from there."

const helpLevelMessage = "That kind of help goes beyond what this activity allows. " +
	"Let's work within smaller steps: tell me where you are stuck and I'll nudge " +
	"you in the right direction."

// Evaluate combines a classification with an effective policy.
// Order matters: the delegation-block check runs before the help-level
// check, since a delegation attempt could otherwise slip through at a
// permissive help level.
func Evaluate(cls reason.Classification, pol Policy) Decision {
	if cls.IsTotalDelegation && pol.BlockCompleteSolutions {
		return Decision{
			Allow:  false,
			Reason: deflectionMessage,
			RuleID: "block-complete-solutions",
		}
	}

	if implied := HelpLevelFor(cls.SuggestedResponse); implied > pol.MaxHelpLevel {
		return Decision{
			Allow: false,
			Reason: fmt.Sprintf("%s (requested %s help, activity allows up to %s)",
				helpLevelMessage, implied, pol.MaxHelpLevel),
			RuleID: "max-help-level",
		}
	}

	return Decision{Allow: true, RuleID: "allow"}
}
