package reason

import "strings"

// Cognitive state inference is a secondary rule set, sensitive to the
// presence of code and error content in the context. It runs after the
// intent rules and never fails.

var planningMarkers = []string{
	"plan", "design", "architecture", "structure", "approach",
	"before i start", "break down", "decompose", "steps should i",
}

var validationMarkers = []string{
	"test", "verify", "check my", "is this correct", "is this right",
	"did i do this right", "review my", "edge case",
}

var reflectionMarkers = []string{
	"what did i learn", "looking back", "in hindsight", "next time",
	"what could i have done", "retrospective", "takeaway",
}

var debuggingMarkers = []string{
	"error", "exception", "crash", "bug", "doesn't work", "doesnt work",
	"not working", "fails", "failing", "stack trace", "panic", "traceback",
	"segfault", "wrong output", "unexpected",
}

// InferState derives the cognitive state for an input.
// Priority: attached error output wins (debugging), then explicit phase
// markers in the prompt, then attached code (implementation), then
// exploration as the default for a session with nothing concrete yet.
func InferState(input *Input) CognitiveState {
	if strings.TrimSpace(input.Ctx.ErrorOutput) != "" {
		return StateDebugging
	}

	lower := input.Lower
	for _, m := range debuggingMarkers {
		if strings.Contains(lower, m) {
			return StateDebugging
		}
	}
	for _, m := range validationMarkers {
		if strings.Contains(lower, m) {
			return StateValidation
		}
	}
	for _, m := range reflectionMarkers {
		if strings.Contains(lower, m) {
			return StateReflection
		}
	}
	for _, m := range planningMarkers {
		if strings.Contains(lower, m) {
			return StatePlanning
		}
	}

	if strings.TrimSpace(input.Ctx.Code) != "" {
		return StateImplementation
	}
	return StateExploration
}
