package remix

import (
	"context"
	"strings"

	"github.com/jonathan/style-remixer/internal/rewriting"
	"github.com/jonathan/style-remixer/internal/types"
)

// Enhancer rewrites a remix request with an external text generator.
type Enhancer interface {
	Enhance(ctx context.Context, req *types.RemixRequest) (*types.Enhancement, error)
}

// Status reports how the final text of an Outcome was produced.
type Status string

// Outcome statuses.
const (
	// StatusOK means the enhancer's text replaced the local final.
	StatusOK Status = "ok"
	// StatusFallback means the enhancer failed or returned nothing; the local final stands.
	StatusFallback Status = "fallback"
	// StatusSkipped means no enhancer was configured.
	StatusSkipped Status = "skipped"
)

// Outcome is a run result plus the enhancement status. It is always usable.
type Outcome struct {
	*RunResult
	Status Status `json:"status"`
	Prompt string `json:"prompt,omitempty"`
	// Reason is the enhancement error message when Status is fallback.
	Reason string `json:"reason,omitempty"`
	// MissingFacts lists locked facts absent from an enhanced final.
	MissingFacts []string `json:"missingFacts,omitempty"`
}

// Run computes the local result first, then tries the enhancer once.
// Enhancement errors never escape: they turn into StatusFallback with the local final kept.
func Run(ctx context.Context, req *types.RemixRequest, enhancer Enhancer) *Outcome {
	return Complete(ctx, req, Plan(req), enhancer)
}

// Complete is Run for callers that already hold the local result, such as a stream
// that has sent it before enhancing.
func Complete(ctx context.Context, req *types.RemixRequest, local *RunResult, enhancer Enhancer) *Outcome {
	outcome := &Outcome{RunResult: local, Status: StatusSkipped}
	if enhancer == nil {
		return outcome
	}

	enhanced, err := enhancer.Enhance(ctx, req)
	if err != nil {
		outcome.Status = StatusFallback
		outcome.Reason = err.Error()
		return outcome
	}

	if enhanced == nil {
		outcome.Status = StatusFallback
		outcome.Reason = "empty enhancement"
		return outcome
	}
	outcome.Prompt = enhanced.Prompt
	text := strings.TrimSpace(enhanced.Final)
	if text == "" {
		outcome.Status = StatusFallback
		outcome.Reason = "empty enhancement"
		return outcome
	}

	result := *local
	result.Final = text + ParagraphSeparator + rewriting.SkinHint(req.Skin)
	outcome.RunResult = &result
	outcome.Status = StatusOK
	outcome.MissingFacts = rewriting.MissingFacts(text, req.Facts)
	return outcome
}
