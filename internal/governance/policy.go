package governance

import (
	"fmt"

	"github.com/pcanas/mentat/internal/reason"
)

// HelpLevel is the ordinal ceiling on how much help may be given.
type HelpLevel int

const (
	HelpNone HelpLevel = iota
	HelpHint
	HelpGuided
	HelpExplanation
	HelpFull
)

var helpLevelNames = map[HelpLevel]string{
	HelpNone:        "none",
	HelpHint:        "hint",
	HelpGuided:      "guided",
	HelpExplanation: "explanation",
	HelpFull:        "full",
}

func (l HelpLevel) String() string {
	if n, ok := helpLevelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("help-level(%d)", int(l))
}

// ParseHelpLevel parses a help level name.
func ParseHelpLevel(s string) (HelpLevel, error) {
	for l, n := range helpLevelNames {
		if n == s {
			return l, nil
		}
	}
	return HelpNone, fmt.Errorf("unknown help level %q", s)
}

// Policy is the governance policy effective for an activity.
// Read-only to this core: loaded, merged, cached, never mutated.
type Policy struct {
	ActivityID string

	// MaxHelpLevel caps the help level any response strategy may imply.
	MaxHelpLevel HelpLevel

	// BlockCompleteSolutions blocks total-delegation prompts outright.
	BlockCompleteSolutions bool

	// RiskThresholds holds per-dimension numeric ceilings, consumed by the
	// risk analyzer as overrides on its defaults.
	RiskThresholds map[string]float64

	Version string
}

// Restrictive is the fail-closed fallback: no complete solutions, minimum
// help level. Used whenever a policy cannot be loaded.
func Restrictive() Policy {
	return Policy{
		MaxHelpLevel:           HelpNone,
		BlockCompleteSolutions: true,
		Version:                "restrictive-fallback",
	}
}

// Default is the policy applied when no configuration exists at all for an
// activity: guided help allowed, solutions blocked.
func Default() Policy {
	return Policy{
		MaxHelpLevel:           HelpGuided,
		BlockCompleteSolutions: true,
		Version:                "default",
	}
}

// HelpLevelFor maps a suggested response type to the help level it implies.
func HelpLevelFor(rt reason.ResponseType) HelpLevel {
	switch rt {
	case reason.RespSocratic:
		return HelpHint
	case reason.RespHints:
		return HelpGuided
	case reason.RespExplanation:
		return HelpExplanation
	case reason.RespBlock:
		return HelpNone
	default:
		// Unknown strategies are treated as maximal help so a permissive
		// mapping bug can never widen what the policy allows.
		return HelpFull
	}
}
