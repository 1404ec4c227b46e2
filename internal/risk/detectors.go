package risk

import (
	"fmt"

	"github.com/pcanas/mentat/internal/trace"
)

// Detector mines one risk pattern from a trace sequence. Detectors are
// independent and order-free; the analyzer may run them in parallel.
type Detector interface {
	Name() string
	Detect(seq trace.Sequence) ([]Risk, error)
}

// DefaultDetectors returns the standard detector registry.
func DefaultDetectors(cfg Config) []Detector {
	return []Detector{
		&DelegationFrequencyDetector{Cfg: cfg},
		&DependencyTrendDetector{Cfg: cfg},
		&JustificationAbsenceDetector{Cfg: cfg},
		&UncriticalAcceptanceDetector{Cfg: cfg},
		&GovernanceViolationDetector{Cfg: cfg},
	}
}

// DelegationFrequencyDetector counts interactions blocked for delegation.
type DelegationFrequencyDetector struct{ Cfg Config }

func (d *DelegationFrequencyDetector) Name() string { return "delegation-frequency" }

func (d *DelegationFrequencyDetector) Detect(seq trace.Sequence) ([]Risk, error) {
	var evidence []string
	for _, tr := range seq.Traces {
		if tr.Blocked && isDelegationBlock(tr) {
			evidence = append(evidence, tr.ID.String())
		}
	}

	count := len(evidence)
	if count < d.Cfg.DelegationMedium {
		return nil, nil
	}

	level := LevelMedium
	if count >= d.Cfg.DelegationHigh {
		level = LevelHigh
	}

	r := Must(seq.SessionID, "delegation-frequency", level, DimCognitive,
		fmt.Sprintf("%d interaction(s) blocked as delegation attempts", count))
	r.Evidence = evidence
	r.Recommendations = []string{
		"Encourage the student to decompose the problem before asking for help.",
		"Review recent activities for tasks the student may find overwhelming.",
	}
	return []Risk{r}, nil
}

func isDelegationBlock(tr trace.Trace) bool {
	return tr.Intent == "delegation-attempt" ||
		tr.Metadata[trace.MetaGovernanceRule] == "block-complete-solutions"
}

// DependencyTrendDetector flags a high mean AI involvement over a trailing
// window of traces.
type DependencyTrendDetector struct{ Cfg Config }

func (d *DependencyTrendDetector) Name() string { return "ai-dependency" }

func (d *DependencyTrendDetector) Detect(seq trace.Sequence) ([]Risk, error) {
	n := len(seq.Traces)
	if n == 0 {
		return nil, nil
	}

	window := seq.Traces
	if d.Cfg.DependencyWindow > 0 && n > d.Cfg.DependencyWindow {
		window = seq.Traces[n-d.Cfg.DependencyWindow:]
	}

	var sum float64
	for _, tr := range window {
		sum += tr.AIInvolvement
	}
	mean := sum / float64(len(window))
	if mean <= d.Cfg.DependencyThreshold {
		return nil, nil
	}

	r := Must(seq.SessionID, "ai-dependency", LevelHigh, DimCognitive,
		fmt.Sprintf("mean AI involvement %.2f over the last %d trace(s) exceeds %.2f",
			mean, len(window), d.Cfg.DependencyThreshold))
	r.Recommendations = []string{
		"Shift toward socratic questioning to rebuild independent problem-solving.",
		"Ask the student to attempt the next step before requesting help.",
	}
	return []Risk{r}, nil
}

// JustificationAbsenceDetector grades how often decision traces are followed
// by a justification within the lookahead window.
type JustificationAbsenceDetector struct{ Cfg Config }

func (d *JustificationAbsenceDetector) Name() string { return "lack-of-justification" }

func (d *JustificationAbsenceDetector) Detect(seq trace.Sequence) ([]Risk, error) {
	decisions := 0
	justified := 0
	for i, tr := range seq.Traces {
		if tr.Interaction != trace.InteractionDecision {
			continue
		}
		decisions++
		end := i + 1 + d.Cfg.JustificationLookahead
		if end > len(seq.Traces) {
			end = len(seq.Traces)
		}
		for _, follow := range seq.Traces[i+1 : end] {
			if follow.Interaction == trace.InteractionJustification {
				justified++
				break
			}
		}
	}

	if decisions == 0 {
		return nil, nil
	}

	ratio := float64(justified) / float64(decisions)
	var level Level
	switch {
	case ratio < d.Cfg.JustifiedHigh:
		level = LevelHigh
	case ratio < d.Cfg.JustifiedMedium:
		level = LevelMedium
	case ratio < d.Cfg.JustifiedLow:
		level = LevelLow
	default:
		return nil, nil
	}

	r := Must(seq.SessionID, "lack-of-justification", level, DimEpistemic,
		fmt.Sprintf("only %d of %d decision(s) were justified within the next %d interaction(s)",
			justified, decisions, d.Cfg.JustificationLookahead))
	r.Recommendations = []string{
		"Prompt the student to explain why they chose their approach.",
	}
	return []Risk{r}, nil
}

// UncriticalAcceptanceDetector flags runs of consecutive high-involvement
// traces with no intervening validation or debugging state.
type UncriticalAcceptanceDetector struct{ Cfg Config }

func (d *UncriticalAcceptanceDetector) Name() string { return "uncritical-acceptance" }

func (d *UncriticalAcceptanceDetector) Detect(seq trace.Sequence) ([]Risk, error) {
	run, maxRun := 0, 0
	for _, tr := range seq.Traces {
		if tr.State == "validation" || tr.State == "debugging" {
			run = 0
			continue
		}
		if tr.AIInvolvement >= d.Cfg.AcceptanceInvolvement {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}

	if maxRun < d.Cfg.AcceptanceRun {
		return nil, nil
	}

	level := LevelMedium
	if maxRun >= 2*d.Cfg.AcceptanceRun {
		level = LevelHigh
	}

	r := Must(seq.SessionID, "uncritical-acceptance", level, DimEpistemic,
		fmt.Sprintf("%d consecutive high-involvement interaction(s) without validation or debugging", maxRun))
	r.Recommendations = []string{
		"Ask the student to test or critique the generated content before moving on.",
	}
	return []Risk{r}, nil
}

// GovernanceViolationDetector counts blocked traces regardless of cause.
type GovernanceViolationDetector struct{ Cfg Config }

func (d *GovernanceViolationDetector) Name() string { return "governance-violation" }

func (d *GovernanceViolationDetector) Detect(seq trace.Sequence) ([]Risk, error) {
	var evidence []string
	for _, tr := range seq.Traces {
		if tr.Blocked {
			evidence = append(evidence, tr.ID.String())
		}
	}
	if len(evidence) == 0 {
		return nil, nil
	}

	level := LevelMedium
	if len(evidence) >= d.Cfg.ViolationsHigh {
		level = LevelHigh
	}

	r := Must(seq.SessionID, "governance-violation", level, DimGovernance,
		fmt.Sprintf("%d interaction(s) blocked by governance policy", len(evidence)))
	r.Evidence = evidence
	r.Recommendations = []string{
		"Review the activity policy with the student so expectations are clear.",
	}
	return []Risk{r}, nil
}
