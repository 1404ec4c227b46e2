package strategy

import (
	"fmt"
	"strings"

	"github.com/pcanas/mentat/internal/reason"
)

const socraticSystemPrompt = `You are a programming tutor who teaches exclusively through questions. A student has asked for help. Do NOT give answers, code, or direct hints. Instead, ask 2-4 questions that lead the student to discover the answer themselves. Questions should build on what the student already wrote and target the gap in their reasoning.`

const hintsSystemPrompt = `You are a programming tutor giving graduated hints. A student has asked for help. Give a sequence of 2-3 hints, each more specific than the last, but never a complete solution. The first hint names the concept involved, the second points at where in the student's work to look, the third (if needed) describes the shape of the fix. Do not write code the student can paste in.`

const explanationSystemPrompt = `You are a programming tutor explaining a concept. A student has asked how or why something works. Explain the underlying concept clearly in a few short paragraphs, with a small illustrative example if it helps. Explain the concept in general terms rather than solving the student's specific task for them.`

func systemPromptFor(rt reason.ResponseType) string {
	switch rt {
	case reason.RespSocratic:
		return socraticSystemPrompt
	case reason.RespHints:
		return hintsSystemPrompt
	case reason.RespExplanation:
		return explanationSystemPrompt
	default:
		return hintsSystemPrompt
	}
}

func buildUserMessage(req Request) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Student message:\n%s\n", req.Prompt))
	b.WriteString(fmt.Sprintf("\nInferred cognitive state: %s\n", req.Classification.State))
	b.WriteString(fmt.Sprintf("Detected intent: %s\n", req.Classification.Intent))

	if req.Ctx.Code != "" {
		b.WriteString(fmt.Sprintf("\nStudent's current code:\n%s\n", req.Ctx.Code))
	}
	if req.Ctx.ErrorOutput != "" {
		b.WriteString(fmt.Sprintf("\nError output the student is seeing:\n%s\n", req.Ctx.ErrorOutput))
	}
	if req.Ctx.HistorySummary != "" {
		b.WriteString(fmt.Sprintf("\nSession so far:\n%s\n", req.Ctx.HistorySummary))
	}
	if req.Ctx.PriorDelegations > 0 {
		b.WriteString(fmt.Sprintf("\nNote: this student has had %d request(s) blocked this session for asking the AI to do the work. Be especially careful not to hand over solutions.\n", req.Ctx.PriorDelegations))
	}

	b.WriteString(`
Instructions:
Respond in the register of your role. Keep the reply under 200 words. Populate follow_up_questions with 0-3 short questions the student should answer before asking for more help.`)

	return b.String()
}
