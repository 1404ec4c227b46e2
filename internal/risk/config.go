package risk

// Config holds the detector tuning thresholds. The spec-level numbers are
// defaults, not law: deployments override them here, and governance
// policies can tighten them per activity via their risk_thresholds map.
type Config struct {
	// DelegationMedium/High are occurrence counts of blocked delegation.
	DelegationMedium int
	DelegationHigh   int

	// DependencyWindow is the trailing trace count for the AI-dependency
	// trend; DependencyThreshold is the mean involvement above which the
	// trend is a high risk.
	DependencyWindow    int
	DependencyThreshold float64

	// JustificationLookahead is how many subsequent traces may hold the
	// justification paired with a decision trace. The Justified* ratios
	// grade the session.
	JustificationLookahead int
	JustifiedHigh          float64
	JustifiedMedium        float64
	JustifiedLow           float64

	// AcceptanceRun is the length of a consecutive high-involvement run
	// with no validation/debugging in between that flags uncritical
	// acceptance; AcceptanceInvolvement is what counts as high.
	AcceptanceRun         int
	AcceptanceInvolvement float64

	// ViolationsHigh is the blocked-trace count at which governance
	// violations escalate from medium to high.
	ViolationsHigh int
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		DelegationMedium:       1,
		DelegationHigh:         3,
		DependencyWindow:       10,
		DependencyThreshold:    0.70,
		JustificationLookahead: 5,
		JustifiedHigh:          0.30,
		JustifiedMedium:        0.50,
		JustifiedLow:           0.70,
		AcceptanceRun:          3,
		AcceptanceInvolvement:  0.70,
		ViolationsHigh:         5,
	}
}

// WithPolicyThresholds returns a copy of the config tightened by a policy's
// per-dimension ceilings. Only the dimensions a detector consumes as a
// numeric ceiling are mapped: cognitive tightens the dependency threshold,
// epistemic tightens the acceptance involvement bar.
func (c Config) WithPolicyThresholds(thresholds map[string]float64) Config {
	out := c
	if v, ok := thresholds[string(DimCognitive)]; ok && v > 0 && v < out.DependencyThreshold {
		out.DependencyThreshold = v
	}
	if v, ok := thresholds[string(DimEpistemic)]; ok && v > 0 && v < out.AcceptanceInvolvement {
		out.AcceptanceInvolvement = v
	}
	return out
}
