package reason

import "strings"

// Delegation matching uses keyword families rather than fixed strings so the
// rule tolerates paraphrase ("write the whole thing", "just do it for me",
// "give me the complete solution").

// delegationPhrases match outright regardless of other signals.
var delegationPhrases = []string{
	"complete solution",
	"entire solution",
	"full solution",
	"whole solution",
	"full code",
	"entire code",
	"whole program",
	"entire program",
	"do it for me",
	"do this for me",
	"do my homework",
	"do my assignment",
	"solve it for me",
	"solve this for me",
	"write it for me",
	"write it all",
	"write everything",
	"just give me the code",
	"just give me the answer",
	"finished solution",
	"ready-made solution",
}

// delegationVerbs paired with a delegationObject also match.
var delegationVerbs = []string{
	"write", "give", "send", "make", "create", "generate",
	"implement", "code", "build", "produce", "finish", "complete",
}

var delegationObjects = []string{
	"the solution", "the answer", "the code", "the program",
	"the implementation", "my assignment", "my homework", "my project",
	"the exercise", "the whole thing", "everything",
}

// effortMarkers indicate the student shows own work, which rules out
// *total* delegation even when solution language is present.
var effortMarkers = []string{
	"i tried", "i've tried", "i have tried",
	"my attempt", "my approach", "my idea",
	"so far i", "here is what i", "here's what i",
	"i think", "i wrote", "i started",
	"what am i doing wrong", "where did i go wrong",
}

// DelegationRule flags prompts that request a finished solution with no own
// effort shown. Highest priority rule.
type DelegationRule struct{}

func (r *DelegationRule) Name() string { return "delegation" }

func (r *DelegationRule) Apply(input *Input) (Classification, bool) {
	if !isDelegation(input) {
		return Classification{}, false
	}
	return Classification{
		IsTotalDelegation:    true,
		IsQuestion:           strings.Contains(input.Lower, "?"),
		Intent:               "delegation-attempt",
		RequiresIntervention: true,
		SuggestedResponse:    RespBlock,
	}, true
}

func isDelegation(input *Input) bool {
	lower := input.Lower

	// Own effort shown: guidance request, not total delegation.
	for _, m := range effortMarkers {
		if strings.Contains(lower, m) {
			return false
		}
	}
	// Attached code counts as shown effort too.
	if strings.TrimSpace(input.Ctx.Code) != "" {
		return false
	}

	for _, p := range delegationPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}

	for _, obj := range delegationObjects {
		if !strings.Contains(lower, obj) {
			continue
		}
		for _, v := range delegationVerbs {
			if strings.Contains(lower, v) {
				return true
			}
		}
	}
	return false
}
