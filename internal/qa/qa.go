package qa

import (
	"context"
	"errors"
)

// Answer is an extractive model's span prediction for one question against
// one bounded context window.
type Answer struct {
	// Text is the verbatim span the model points at.
	Text string `json:"answer"`
	// Score is the model's confidence in [0,1].
	Score float64 `json:"score"`
	// Start and End are byte offsets of the span within the context the
	// model was given. Zero values mean the backend did not report them.
	Start int `json:"start"`
	End   int `json:"end"`
}

// Answerer asks an extractive QA backend to locate an answer span inside
// passage. Implementations must be safe for concurrent reuse: inference is
// invoked per request and retains no mutable state between calls.
type Answerer interface {
	Answer(ctx context.Context, question, passage string) (Answer, error)
}

// ErrNoAnswer means the model processed the request and concluded the
// passage does not contain an answer. It is a normal outcome, not a
// failure, and must never be presented as a zero-confidence answer.
var ErrNoAnswer = errors.New("no answer found in context")

// ErrUnavailable means the backend could not be reached or failed to run
// inference (load failure, transport error, timeout). Callers must keep it
// distinct from ErrNoAnswer: one is "the document doesn't say", the other
// is "nobody could look".
var ErrUnavailable = errors.New("qa backend unavailable")

// Confidence tiers for display. Thresholds are a presentation policy.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// Tier buckets a [0,1] score for tiered display: >=0.70 high, >=0.40
// medium, below that low.
func Tier(score float64) string {
	switch {
	case score >= 0.70:
		return TierHigh
	case score >= 0.40:
		return TierMedium
	default:
		return TierLow
	}
}

// clampScore forces a backend-reported confidence into [0,1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
