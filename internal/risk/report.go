package risk

import (
	"fmt"
	"sort"
	"strings"
)

// Report aggregates the risks of one session. The only supported mutation
// path is Add: counters are recomputed on every insert, so they can never
// desync from the contents the way a constructor-populated list can.
type Report struct {
	SessionID string

	// OverallAssessment is a free-text summary filled in by the analyzer.
	OverallAssessment string

	risks    []Risk
	perLevel map[Level]int
}

// NewReport creates an empty report for a session.
func NewReport(sessionID string) *Report {
	return &Report{
		SessionID: sessionID,
		perLevel:  make(map[Level]int),
	}
}

// Add appends a risk and updates the running counters.
func (r *Report) Add(risk Risk) {
	r.risks = append(r.risks, risk)
	r.perLevel[risk.Level]++
}

// TotalRisks returns the number of risks in the report.
func (r *Report) TotalRisks() int { return len(r.risks) }

// CountByLevel returns the running counter for one level.
func (r *Report) CountByLevel(l Level) int { return r.perLevel[l] }

// LevelCounts returns a copy of the per-level counters.
func (r *Report) LevelCounts() map[Level]int {
	out := make(map[Level]int, len(r.perLevel))
	for k, v := range r.perLevel {
		out[k] = v
	}
	return out
}

// Risks returns a copy of the collected risks.
func (r *Report) Risks() []Risk {
	out := make([]Risk, len(r.risks))
	copy(out, r.risks)
	return out
}

// HighestLevel returns the most severe level present, and false when the
// report is empty.
func (r *Report) HighestLevel() (Level, bool) {
	if len(r.risks) == 0 {
		return LevelLow, false
	}
	highest := LevelLow
	for _, risk := range r.risks {
		if risk.Level > highest {
			highest = risk.Level
		}
	}
	return highest, true
}

// Recommendations merges the recommendations of all risks, deduplicated,
// in stable order.
func (r *Report) Recommendations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, risk := range r.risks {
		for _, rec := range risk.Recommendations {
			if seen[rec] {
				continue
			}
			seen[rec] = true
			out = append(out, rec)
		}
	}
	return out
}

// Summarize fills OverallAssessment from the current contents.
func (r *Report) Summarize() {
	if len(r.risks) == 0 {
		r.OverallAssessment = "No behavioral risks detected in this session."
		return
	}

	highest, _ := r.HighestLevel()
	types := make([]string, 0, len(r.risks))
	seen := make(map[string]bool)
	for _, risk := range r.risks {
		if !seen[risk.Type] {
			seen[risk.Type] = true
			types = append(types, risk.Type)
		}
	}
	sort.Strings(types)

	r.OverallAssessment = fmt.Sprintf(
		"%d risk(s) detected (highest severity: %s): %s.",
		len(r.risks), highest, strings.Join(types, ", "))
}
