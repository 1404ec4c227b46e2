// Package gateway mediates every student-AI interaction: classification,
// governance, response generation, trace capture, and background risk
// analysis run in one pass per prompt.
package gateway

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pcanas/mentat/internal/governance"
	"github.com/pcanas/mentat/internal/reason"
	"github.com/pcanas/mentat/internal/risk"
	"github.com/pcanas/mentat/internal/strategy"
	"github.com/pcanas/mentat/internal/trace"
)

// Responder generates the tutoring response for an allowed interaction.
type Responder interface {
	Respond(ctx context.Context, req strategy.Request) (*strategy.Result, error)
}

// Config holds gateway tuning.
type Config struct {
	// AnalyzeTimeout bounds the background risk analysis pass.
	AnalyzeTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{AnalyzeTimeout: 10 * time.Second}
}

// Gateway is the single entry point for student prompts. Stateless between
// calls: all session state lives in the trace store.
type Gateway struct {
	engine    *reason.Engine
	policies  governance.Store
	responder Responder
	traces    trace.Repo
	capturer  *trace.Capturer
	analyzer  *risk.Analyzer
	cfg       Config
}

// New creates a Gateway. analyzer may be nil to disable risk analysis.
func New(
	engine *reason.Engine,
	policies governance.Store,
	responder Responder,
	traces trace.Repo,
	analyzer *risk.Analyzer,
	cfg Config,
) *Gateway {
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = DefaultConfig().AnalyzeTimeout
	}
	return &Gateway{
		engine:    engine,
		policies:  policies,
		responder: responder,
		traces:    traces,
		capturer:  trace.NewCapturer(traces),
		analyzer:  analyzer,
		cfg:       cfg,
	}
}

// Input is one student prompt with its session context.
type Input struct {
	SessionID  string
	ActivityID string
	Prompt     string
	Ctx        reason.Context
}

// Outcome is what the student sees, plus the audit record behind it.
type Outcome struct {
	// Blocked reports whether governance refused the interaction.
	// When true, Message is the pedagogical deflection.
	Blocked bool

	// Message is the text shown to the student.
	Message string

	// FollowUps are questions the tutor wants answered before more help.
	FollowUps []string

	// Strategy is the response strategy that was executed (empty if blocked).
	Strategy reason.ResponseType

	// Trace is the persisted record of this interaction.
	Trace trace.Trace
}

// Process runs one prompt through the full pipeline. A blocked interaction
// is a normal outcome, not an error; errors mean the interaction could not
// be completed and may be retried.
func (g *Gateway) Process(ctx context.Context, in Input) (*Outcome, error) {
	if in.SessionID == "" {
		return nil, fmt.Errorf("gateway: session id is required")
	}

	rctx := in.Ctx
	if rctx.PriorDelegations == 0 {
		rctx.PriorDelegations = g.priorDelegations(ctx, in.SessionID)
	}

	cls := g.engine.Classify(in.Prompt, rctx)

	pol, err := g.policies.GetEffectivePolicy(ctx, in.ActivityID)
	auditNote := ""
	if err != nil {
		// Fail closed: an unavailable policy store restricts, never permits.
		pol = governance.Restrictive()
		auditNote = fmt.Sprintf("policy load failed, fell back to restrictive: %v", err)
		fmt.Fprintf(os.Stderr, "warning: %s\n", auditNote)
	}

	decision := governance.Evaluate(cls, pol)
	decision.AuditNote = auditNote

	if !decision.Allow {
		tr, err := g.capturer.Capture(ctx, in.SessionID, cls, decision, decision.Reason, 0, nil)
		if err != nil {
			return nil, fmt.Errorf("capture blocked interaction: %w", err)
		}
		g.analyzeAsync(in.SessionID, pol)
		return &Outcome{Blocked: true, Message: decision.Reason, Trace: tr}, nil
	}

	st := strategy.Select(cls.SuggestedResponse, pol.MaxHelpLevel)
	res, err := g.responder.Respond(ctx, strategy.Request{
		Strategy:       st,
		Prompt:         in.Prompt,
		Ctx:            rctx,
		Classification: cls,
	})
	if err != nil {
		// The failed attempt is still part of the session's history.
		meta := map[string]string{trace.MetaStrategy: string(st)}
		if _, capErr := g.capturer.Capture(ctx, in.SessionID, cls, decision, in.Prompt, 0, meta); capErr != nil {
			fmt.Fprintf(os.Stderr, "warning: capture failed interaction: %v\n", capErr)
		}
		return nil, fmt.Errorf("generate response: %w", err)
	}

	meta := map[string]string{trace.MetaStrategy: string(st)}
	content := in.Prompt + "\n---\n" + res.Response
	tr, err := g.capturer.Capture(ctx, in.SessionID, cls, decision, content, res.AIInvolvement, meta)
	if err != nil {
		return nil, fmt.Errorf("capture interaction: %w", err)
	}

	g.analyzeAsync(in.SessionID, pol)

	return &Outcome{
		Message:   res.Response,
		FollowUps: res.FollowUps,
		Strategy:  st,
		Trace:     tr,
	}, nil
}

// AnalyzeSession runs risk analysis for a session synchronously.
func (g *Gateway) AnalyzeSession(ctx context.Context, sessionID string, pol governance.Policy) (*risk.Report, error) {
	if g.analyzer == nil {
		return nil, fmt.Errorf("risk analysis disabled")
	}
	traces, err := g.traces.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session traces: %w", err)
	}
	seq := trace.Sequence{SessionID: sessionID, Traces: traces}
	return g.analyzerFor(pol).Analyze(ctx, seq)
}

// analyzerFor applies any policy risk thresholds to the detector registry.
func (g *Gateway) analyzerFor(pol governance.Policy) *risk.Analyzer {
	if len(pol.RiskThresholds) == 0 {
		return g.analyzer
	}
	cfg := risk.DefaultConfig().WithPolicyThresholds(pol.RiskThresholds)
	return g.analyzer.WithConfig(cfg)
}

// analyzeAsync kicks off risk analysis without blocking the interaction.
// The context is detached so analysis survives the request returning.
func (g *Gateway) analyzeAsync(sessionID string, pol governance.Policy) {
	if g.analyzer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.cfg.AnalyzeTimeout)
		defer cancel()

		traces, err := g.traces.ListBySession(ctx, sessionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: risk analysis: load traces: %v\n", err)
			return
		}
		seq := trace.Sequence{SessionID: sessionID, Traces: traces}
		if _, err := g.analyzerFor(pol).Analyze(ctx, seq); err != nil {
			fmt.Fprintf(os.Stderr, "warning: risk analysis failed: %v\n", err)
		}
	}()
}

// priorDelegations counts earlier blocked delegation attempts in the session.
// Errors degrade to zero; escalation is a heuristic, not a gate.
func (g *Gateway) priorDelegations(ctx context.Context, sessionID string) int {
	traces, err := g.traces.ListBySession(ctx, sessionID)
	if err != nil {
		return 0
	}
	n := 0
	for _, tr := range traces {
		if tr.Blocked && tr.Intent == "delegation-attempt" {
			n++
		}
	}
	return n
}
