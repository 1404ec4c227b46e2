package reason

// CognitiveState is a coarse phase of problem-solving inferred from one
// interaction.
type CognitiveState string

const (
	StateExploration    CognitiveState = "exploration"
	StatePlanning       CognitiveState = "planning"
	StateImplementation CognitiveState = "implementation"
	StateDebugging      CognitiveState = "debugging"
	StateValidation     CognitiveState = "validation"
	StateReflection     CognitiveState = "reflection"
)

// ResponseType is the pedagogical strategy the engine suggests for a prompt.
type ResponseType string

const (
	RespSocratic    ResponseType = "socratic-questioning"
	RespHints       ResponseType = "guided-hints"
	RespExplanation ResponseType = "conceptual-explanation"
	RespBlock       ResponseType = "block"
)

// Context carries optional per-interaction context supplied by the caller.
// All fields may be empty; classification degrades gracefully without them.
type Context struct {
	// Code is a code snippet the student attached, if any.
	Code string

	// ErrorOutput is compiler/runtime output the student attached, if any.
	ErrorOutput string

	// HistorySummary is a short summary of the session so far.
	HistorySummary string

	// PriorDelegations counts earlier delegation attempts in this session.
	// Passed by the caller; the engine holds no session state.
	PriorDelegations int
}

// Classification is the structured decision for one prompt.
type Classification struct {
	// IsTotalDelegation means the prompt asks for a finished solution with
	// no own effort shown.
	IsTotalDelegation bool

	// IsQuestion means the prompt is phrased as a question.
	IsQuestion bool

	// RequestsExplanation means the prompt asks for a concept to be explained.
	RequestsExplanation bool

	// State is the inferred problem-solving phase.
	State CognitiveState

	// Intent is a free-form classification tag, e.g. "delegation-attempt".
	Intent string

	// RequiresIntervention flags prompts that warrant a tutor intervention.
	RequiresIntervention bool

	// SuggestedResponse is the strategy the engine recommends.
	SuggestedResponse ResponseType

	// RuleName identifies the rule that produced this classification.
	RuleName string
}

// Input holds the normalized prompt and context for rule evaluation.
type Input struct {
	Prompt string
	Lower  string // prompt lowercased and whitespace-trimmed
	Ctx    Context
}
