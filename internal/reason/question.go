package reason

import "strings"

// justificationMarkers signal the student is explaining a decision they made.
var justificationMarkers = []string{
	"because", "my reasoning", "the reason i", "that's why i", "so that it",
}

// JustificationRule recognizes prompts where the student justifies a prior
// decision. These are low-risk and get a socratic follow-up.
type JustificationRule struct{}

func (r *JustificationRule) Name() string { return "justification" }

func (r *JustificationRule) Apply(input *Input) (Classification, bool) {
	for _, m := range justificationMarkers {
		if strings.Contains(input.Lower, m) {
			return Classification{
				IsQuestion:        strings.Contains(input.Lower, "?"),
				Intent:            "justification",
				SuggestedResponse: RespSocratic,
			}, true
		}
	}
	return Classification{}, false
}

// decisionMarkers signal the student is committing to an approach without
// giving the reasoning. A later justification trace pairs with this one.
var decisionMarkers = []string{
	"i'll use", "i will use", "i'm going to", "im going to", "i plan to",
	"going with", "i chose", "i decided", "i picked", "i went with",
	"let's use", "lets use",
}

// DecisionRule recognizes prompts where the student states a decision.
type DecisionRule struct{}

func (r *DecisionRule) Name() string { return "decision" }

func (r *DecisionRule) Apply(input *Input) (Classification, bool) {
	for _, m := range decisionMarkers {
		if strings.Contains(input.Lower, m) {
			return Classification{
				IsQuestion:        strings.Contains(input.Lower, "?"),
				Intent:            "decision",
				SuggestedResponse: RespSocratic,
			}, true
		}
	}
	return Classification{}, false
}

var explanationMarkers = []string{
	"explain", "what does", "what is", "what are", "how does", "how do",
	"why does", "why do", "why is", "what's the difference",
	"help me understand", "i don't understand", "i dont understand",
	"confused about", "what it means", "what this means",
}

// ExplanationRule recognizes requests for a conceptual explanation.
type ExplanationRule struct{}

func (r *ExplanationRule) Name() string { return "explanation" }

func (r *ExplanationRule) Apply(input *Input) (Classification, bool) {
	for _, m := range explanationMarkers {
		if strings.Contains(input.Lower, m) {
			return Classification{
				IsQuestion:          strings.Contains(input.Lower, "?"),
				RequestsExplanation: true,
				Intent:              "explanation-request",
				SuggestedResponse:   RespExplanation,
			}, true
		}
	}
	return Classification{}, false
}

var hintMarkers = []string{
	"hint", "nudge", "point me", "am i on the right track",
	"on the right path", "a clue", "where to look", "where should i look",
	"what should i try", "stuck on", "i'm stuck", "im stuck",
}

// HintRequestRule recognizes requests for a hint rather than an answer.
type HintRequestRule struct{}

func (r *HintRequestRule) Name() string { return "hint-request" }

func (r *HintRequestRule) Apply(input *Input) (Classification, bool) {
	for _, m := range hintMarkers {
		if strings.Contains(input.Lower, m) {
			return Classification{
				IsQuestion:        strings.Contains(input.Lower, "?"),
				Intent:            "hint-request",
				SuggestedResponse: RespHints,
			}, true
		}
	}
	return Classification{}, false
}

// QuestionRule catches remaining interrogative prompts.
type QuestionRule struct{}

func (r *QuestionRule) Name() string { return "question" }

func (r *QuestionRule) Apply(input *Input) (Classification, bool) {
	lower := input.Lower
	if !strings.Contains(lower, "?") && !hasInterrogativePrefix(lower) {
		return Classification{}, false
	}
	return Classification{
		IsQuestion:        true,
		Intent:            "question",
		SuggestedResponse: RespSocratic,
	}, true
}

var interrogativePrefixes = []string{
	"how", "why", "what", "when", "where", "which", "who",
	"can i", "could i", "should i", "is it", "are there", "does",
}

func hasInterrogativePrefix(lower string) bool {
	for _, p := range interrogativePrefixes {
		if strings.HasPrefix(lower, p+" ") || lower == p {
			return true
		}
	}
	return false
}
