// Package risk mines a session's trace sequence for behavioral risk
// patterns through a registry of independent detectors.
package risk

import (
	"fmt"

	"github.com/google/uuid"
)

// Level is the ordinal severity of a risk.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
	LevelCritical
)

var levelNames = map[Level]string{
	LevelLow:      "low",
	LevelMedium:   "medium",
	LevelHigh:     "high",
	LevelCritical: "critical",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel parses a level name.
func ParseLevel(s string) (Level, error) {
	for l, n := range levelNames {
		if n == s {
			return l, nil
		}
	}
	return LevelLow, fmt.Errorf("unknown risk level %q", s)
}

// Dimension is the axis a risk lives on. Mandatory on every Risk: detectors
// must set it explicitly, a defaulted dimension would corrupt the analytics.
type Dimension string

const (
	DimCognitive  Dimension = "cognitive"
	DimEthical    Dimension = "ethical"
	DimEpistemic  Dimension = "epistemic"
	DimTechnical  Dimension = "technical"
	DimGovernance Dimension = "governance"
)

// Valid reports whether d is one of the five defined dimensions.
func (d Dimension) Valid() bool {
	switch d {
	case DimCognitive, DimEthical, DimEpistemic, DimTechnical, DimGovernance:
		return true
	}
	return false
}

// Risk is one detected behavioral pattern.
type Risk struct {
	ID              uuid.UUID
	SessionID       string
	Type            string
	Level           Level
	Dimension       Dimension
	Description     string
	Evidence        []string
	Recommendations []string
	Resolved        bool
}

// New constructs a Risk and enforces the construction invariants.
// An unset or unknown dimension is a contract error, never a default.
func New(sessionID, riskType string, level Level, dim Dimension, description string) (Risk, error) {
	if !dim.Valid() {
		return Risk{}, fmt.Errorf("risk %q: dimension %q is not a defined dimension", riskType, dim)
	}
	if sessionID == "" {
		return Risk{}, fmt.Errorf("risk %q: session id is required", riskType)
	}
	return Risk{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Type:        riskType,
		Level:       level,
		Dimension:   dim,
		Description: description,
	}, nil
}

// Must is New that panics on contract errors. Detector code paths use it;
// the analyzer isolates detector panics, so a broken detector surfaces in
// the logs instead of silently emitting a malformed risk.
func Must(sessionID, riskType string, level Level, dim Dimension, description string) Risk {
	r, err := New(sessionID, riskType, level, dim, description)
	if err != nil {
		panic(err)
	}
	return r
}
