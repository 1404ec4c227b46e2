package strategy

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pcanas/mentat/internal/governance"
	"github.com/pcanas/mentat/internal/llm"
	"github.com/pcanas/mentat/internal/reason"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		suggested reason.ResponseType
		maxHelp   governance.HelpLevel
		want      reason.ResponseType
	}{
		{reason.RespSocratic, governance.HelpFull, reason.RespSocratic},
		{reason.RespExplanation, governance.HelpExplanation, reason.RespExplanation},
		// Policy ceiling downgrades step by step.
		{reason.RespExplanation, governance.HelpGuided, reason.RespHints},
		{reason.RespExplanation, governance.HelpHint, reason.RespSocratic},
		{reason.RespHints, governance.HelpHint, reason.RespSocratic},
		// A suggested block that governance let through becomes guided hints.
		{reason.RespBlock, governance.HelpFull, reason.RespHints},
		{reason.RespBlock, governance.HelpHint, reason.RespSocratic},
	}

	for _, tt := range tests {
		got := Select(tt.suggested, tt.maxHelp)
		if got != tt.want {
			t.Errorf("Select(%s, %s) = %s, want %s", tt.suggested, tt.maxHelp, got, tt.want)
		}
	}
}

func TestEstimateInvolvement(t *testing.T) {
	// Block never counts as AI work.
	if got := EstimateInvolvement(reason.RespBlock, llm.Usage{InputTokens: 100, OutputTokens: 100, TotalTokens: 200}); got != 0 {
		t.Errorf("blocked involvement = %v, want 0", got)
	}

	// Strategy bases order socratic < hints < explanation for equal usage.
	u := llm.Usage{InputTokens: 100, OutputTokens: 100, TotalTokens: 200}
	soc := EstimateInvolvement(reason.RespSocratic, u)
	hints := EstimateInvolvement(reason.RespHints, u)
	expl := EstimateInvolvement(reason.RespExplanation, u)
	if !(soc < hints && hints < expl) {
		t.Errorf("involvement ordering broken: %v %v %v", soc, hints, expl)
	}

	// Output-heavy responses shift the estimate up, and it stays in [0,1].
	light := EstimateInvolvement(reason.RespExplanation, llm.Usage{InputTokens: 900, OutputTokens: 100, TotalTokens: 1000})
	heavy := EstimateInvolvement(reason.RespExplanation, llm.Usage{InputTokens: 100, OutputTokens: 900, TotalTokens: 1000})
	if !(light < heavy) {
		t.Errorf("output share should raise involvement: light=%v heavy=%v", light, heavy)
	}
	for _, v := range []float64{soc, hints, expl, light, heavy} {
		if v < 0 || v > 1 {
			t.Errorf("involvement %v outside [0,1]", v)
		}
	}
}

func mockTutorResponse(t *testing.T, text string, followUps ...string) llm.MockResponse {
	t.Helper()
	if followUps == nil {
		followUps = []string{}
	}
	content, err := json.Marshal(map[string]any{
		"response":            text,
		"follow_up_questions": followUps,
	})
	if err != nil {
		t.Fatal(err)
	}
	return llm.MockResponse{
		Content: content,
		Usage:   llm.Usage{InputTokens: 200, OutputTokens: 100, TotalTokens: 300},
	}
}

func TestRespond(t *testing.T) {
	mock := llm.NewMockProvider(mockTutorResponse(t, "What does the loop variable hold on the last iteration?", "What did you expect?"))
	svc := NewService(mock, DefaultConfig())

	res, err := svc.Respond(context.Background(), Request{
		Strategy: reason.RespSocratic,
		Prompt:   "why is my loop off by one?",
		Ctx:      reason.Context{Code: "for i := 0; i <= len(xs); i++ {"},
		Classification: reason.Classification{
			State:  reason.StateDebugging,
			Intent: "question",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Strategy != reason.RespSocratic {
		t.Errorf("strategy = %s", res.Strategy)
	}
	if res.Response == "" || len(res.FollowUps) != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.AIInvolvement <= 0 || res.AIInvolvement >= 1 {
		t.Errorf("involvement = %v", res.AIInvolvement)
	}

	// The prompt carries the student's code and state to the model.
	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d", len(mock.Calls))
	}
	call := mock.Calls[0]
	if call.System != socraticSystemPrompt {
		t.Error("socratic strategy must use the socratic system prompt")
	}
	user := call.Messages[0].Content
	if !strings.Contains(user, "i <= len(xs)") || !strings.Contains(user, "debugging") {
		t.Errorf("user message missing context:\n%s", user)
	}
	if call.Schema != TutorResponseSchema {
		t.Error("response schema not attached")
	}
}

func TestRespond_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue: provider unavailable
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Respond(context.Background(), Request{
		Strategy: reason.RespHints,
		Prompt:   "help",
	})
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
}
