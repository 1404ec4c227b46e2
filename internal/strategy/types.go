package strategy

import (
	"github.com/pcanas/mentat/internal/llm"
	"github.com/pcanas/mentat/internal/reason"
)

// Config holds tuning knobs for response generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults. Tutoring responses are short;
// the token ceiling keeps explanations from drifting into full solutions.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.4,
	}
}

// Request carries everything needed to generate one tutoring response.
type Request struct {
	Strategy       reason.ResponseType
	Prompt         string
	Ctx            reason.Context
	Classification reason.Classification
}

// Result is one generated tutoring response.
type Result struct {
	Strategy reason.ResponseType

	// Response is the tutor's reply to show the student.
	Response string

	// FollowUps are optional questions nudging the student's next step.
	FollowUps []string

	// AIInvolvement estimates how much of the resulting work is the AI's
	// rather than the student's, in [0, 1].
	AIInvolvement float64

	Usage llm.Usage
	Model string
}
