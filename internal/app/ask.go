package app

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/budget"
	"github.com/hyperifyio/goanswer/internal/cache"
	"github.com/hyperifyio/goanswer/internal/excerpt"
	"github.com/hyperifyio/goanswer/internal/qa"
)

// Result is the display/serialization form of one answered question.
// Confidence is a percentage (0-100, one decimal) to match the JSON
// contract {"answer", "confidence", "context_used"}.
type Result struct {
	Answer      string  `json:"answer"`
	Confidence  float64 `json:"confidence"`
	ContextUsed string  `json:"context_used"`

	// Tier buckets Confidence for display; NoAnswer marks the model's
	// explicit "the document does not say" outcome, which is distinct
	// from both a low-confidence answer and a backend failure.
	Tier     string `json:"-"`
	NoAnswer bool   `json:"-"`
}

// Exchange records one question/result pair for the session transcript.
type Exchange struct {
	Question string
	Result   Result
	AskedAt  time.Time
}

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("empty question")

// Ask runs one synchronous question against the loaded document: derive
// the context budget, assemble the excerpt, consult the cache, call the
// backend, and tier the confidence. A qa.ErrNoAnswer outcome returns a
// Result with NoAnswer set and a nil error; qa.ErrUnavailable propagates
// as an error so callers never mistake an outage for a low-confidence
// answer.
func (a *App) Ask(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}
	if a.doc.Text == "" {
		return Result{}, ErrNoDocument
	}

	reqID := uuid.NewString()
	model := a.cfg.ModelName()

	budgetChars := a.cfg.ContextChars
	if budgetChars <= 0 {
		budgetChars = budget.ContextChars(model, question)
	}
	passage := excerpt.Build(question, a.doc.Text, budgetChars)
	log.Debug().Str("request", reqID).Int("budget", budgetChars).Int("context", len(passage)).
		Msg("context window assembled")

	key := cache.KeyFrom(model, question, passage)
	if a.cache != nil {
		if ans, ok := a.cache.Get(ctx, key); ok {
			log.Debug().Str("request", reqID).Msg("answer served from cache")
			return a.record(question, resultFrom(ans, passage)), nil
		}
	}

	ans, err := a.answerer.Answer(ctx, question, passage)
	if errors.Is(err, qa.ErrNoAnswer) {
		log.Info().Str("request", reqID).Msg("no answer found in document")
		return a.record(question, Result{ContextUsed: passage, Tier: qa.TierLow, NoAnswer: true}), nil
	}
	if err != nil {
		return Result{}, err
	}

	if a.cache != nil {
		_ = a.cache.Save(ctx, key, ans)
	}
	res := resultFrom(ans, passage)
	log.Info().Str("request", reqID).Float64("confidence", res.Confidence).Str("tier", res.Tier).
		Msg("answer produced")
	return a.record(question, res), nil
}

func (a *App) record(question string, res Result) Result {
	a.transcript = append(a.transcript, Exchange{Question: question, Result: res, AskedAt: time.Now()})
	return res
}

func resultFrom(ans qa.Answer, passage string) Result {
	return Result{
		Answer:      ans.Text,
		Confidence:  math.Round(ans.Score*1000) / 10,
		ContextUsed: passage,
		Tier:        qa.Tier(ans.Score),
	}
}
