package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pcanas/mentat/internal/governance"
	"github.com/pcanas/mentat/internal/llm"
	"github.com/pcanas/mentat/internal/reason"
)

// Select resolves the strategy to execute: the reasoning engine's suggestion,
// downgraded to whatever the policy's help ceiling permits. A suggested block
// that governance did not uphold falls back to guided hints so the student
// still gets a pedagogically safe response.
func Select(suggested reason.ResponseType, maxHelp governance.HelpLevel) reason.ResponseType {
	if suggested == reason.RespBlock {
		suggested = reason.RespHints
	}
	for governance.HelpLevelFor(suggested) > maxHelp {
		switch suggested {
		case reason.RespExplanation:
			suggested = reason.RespHints
		case reason.RespHints:
			suggested = reason.RespSocratic
		default:
			// Socratic questioning is the floor for any session that is
			// allowed to proceed at all.
			return reason.RespSocratic
		}
	}
	return suggested
}

// EstimateInvolvement estimates the AI's share of the resulting work for a
// generated response. Each strategy has a base level (questions transfer less
// work than explanations), shifted by how much the model produced relative to
// what the student supplied.
func EstimateInvolvement(rt reason.ResponseType, usage llm.Usage) float64 {
	var base float64
	switch rt {
	case reason.RespSocratic:
		base = 0.2
	case reason.RespHints:
		base = 0.45
	case reason.RespExplanation:
		base = 0.7
	case reason.RespBlock:
		return 0
	default:
		base = 0.45
	}

	if usage.TotalTokens > 0 {
		outShare := float64(usage.OutputTokens) / float64(usage.TotalTokens)
		base += (outShare - 0.5) * 0.2
	}

	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}

// Service generates tutoring responses through an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a response generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type tutorOutput struct {
	Response          string   `json:"response"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// Respond generates one tutoring response using the request's strategy.
func (s *Service) Respond(ctx context.Context, req Request) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "tutor-"+string(req.Strategy))

	llmReq := llm.Request{
		System: systemPromptFor(req.Strategy),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      TutorResponseSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("%s response generation: %w", req.Strategy, err)
	}

	var out tutorOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse tutor response: %w", err)
	}

	return &Result{
		Strategy:      req.Strategy,
		Response:      out.Response,
		FollowUps:     out.FollowUpQuestions,
		AIInvolvement: EstimateInvolvement(req.Strategy, resp.Usage),
		Usage:         resp.Usage,
		Model:         resp.Model,
	}, nil
}
