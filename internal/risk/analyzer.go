package risk

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pcanas/mentat/internal/trace"
)

// Repo is the risk store collaborator.
type Repo interface {
	Append(ctx context.Context, r Risk) error
	ListBySession(ctx context.Context, sessionID string) ([]Risk, error)
}

// Analyzer runs the detector registry over a trace sequence and aggregates
// the results into a report.
type Analyzer struct {
	detectors []Detector
	repo      Repo // optional; nil means results are not persisted
}

// NewAnalyzer creates an analyzer with the given detectors.
// Nil detectors means DefaultDetectors with default config.
func NewAnalyzer(detectors []Detector, repo Repo) *Analyzer {
	if detectors == nil {
		detectors = DefaultDetectors(DefaultConfig())
	}
	return &Analyzer{detectors: detectors, repo: repo}
}

// WithConfig returns an analyzer using the default detector registry tuned
// by cfg, persisting to the same repo. Used when a policy tightens the
// detection thresholds for one activity.
func (a *Analyzer) WithConfig(cfg Config) *Analyzer {
	return &Analyzer{detectors: DefaultDetectors(cfg), repo: a.repo}
}

// Analyze runs all detectors in parallel and merges their findings through
// Report.Add, preserving the counter invariants. A detector that fails or
// panics is logged and excluded; it never aborts the other detectors or the
// overall report.
func (a *Analyzer) Analyze(ctx context.Context, seq trace.Sequence) (*Report, error) {
	results := make([][]Risk, len(a.detectors))

	// Each goroutine owns its slot in results; Wait publishes the writes.
	g, _ := errgroup.WithContext(ctx)
	for i, det := range a.detectors {
		g.Go(func() error {
			risks, err := runDetector(det, seq)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: risk detector %s failed: %v\n", det.Name(), err)
				return nil // isolation: detector failures are not fatal
			}
			results[i] = risks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := NewReport(seq.SessionID)
	for _, risks := range results {
		for _, r := range risks {
			report.Add(r)
		}
	}
	report.Summarize()

	if a.repo != nil {
		for _, r := range report.Risks() {
			if err := a.repo.Append(ctx, r); err != nil {
				fmt.Fprintf(os.Stderr, "warning: persist risk %s: %v\n", r.Type, err)
			}
		}
	}
	return report, nil
}

// runDetector invokes one detector, converting a panic into an error so a
// broken detector cannot take down the analysis.
func runDetector(det Detector, seq trace.Sequence) (risks []Risk, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			risks = nil
			err = fmt.Errorf("detector panicked: %v", rec)
		}
	}()
	return det.Detect(seq)
}
