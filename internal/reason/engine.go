package reason

import "strings"

// MaxPromptBytes bounds the prompt text considered for classification.
// Longer prompts are truncated, not rejected.
const MaxPromptBytes = 16 * 1024

// Config holds engine tuning constants.
type Config struct {
	// EscalationThreshold is the number of prior delegation attempts in a
	// session at which any prompt triggers intervention.
	EscalationThreshold int
}

// DefaultConfig returns the default engine tuning.
func DefaultConfig() Config {
	return Config{EscalationThreshold: 2}
}

// Engine classifies prompts through an ordered rule chain.
// Pure and deterministic: identical input yields identical output, and no
// external calls are made.
type Engine struct {
	rules []Rule
	cfg   Config
}

// NewEngine creates an engine with the given rules and config.
// Nil rules means DefaultRules.
func NewEngine(rules []Rule, cfg Config) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules, cfg: cfg}
}

// Classify classifies one prompt. A malformed or empty prompt yields the
// conservative default rather than an error: classification must never
// block the pipeline.
func (e *Engine) Classify(prompt string, ctx Context) Classification {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return conservativeDefault()
	}
	if len(trimmed) > MaxPromptBytes {
		trimmed = trimmed[:MaxPromptBytes]
	}

	input := &Input{
		Prompt: trimmed,
		Lower:  strings.ToLower(trimmed),
		Ctx:    ctx,
	}

	cls, ok := RunRules(e.rules, input)
	if !ok {
		cls = Classification{
			Intent:            "exploration",
			SuggestedResponse: RespSocratic,
			RuleName:          "default",
		}
	}

	cls.State = InferState(input)

	if !cls.RequiresIntervention && ctx.PriorDelegations >= e.cfg.EscalationThreshold {
		cls.RequiresIntervention = true
	}
	return cls
}

// Classify runs the default engine. Most callers want this.
func Classify(prompt string, ctx Context) Classification {
	return defaultEngine.Classify(prompt, ctx)
}

var defaultEngine = NewEngine(nil, DefaultConfig())

func conservativeDefault() Classification {
	return Classification{
		State:             StateExploration,
		Intent:            "exploration",
		SuggestedResponse: RespSocratic,
		RuleName:          "default",
	}
}
