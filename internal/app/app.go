package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/cache"
	"github.com/hyperifyio/goanswer/internal/docload"
	"github.com/hyperifyio/goanswer/internal/llm"
	"github.com/hyperifyio/goanswer/internal/qa"
)

// App wires the document, the answering backend and the answer cache
// together. The document is explicit request state owned by the App and
// replaced wholesale on each load; the backend and cache are read-only
// collaborators safe for reuse.
type App struct {
	cfg      Config
	answerer qa.Answerer
	cache    *cache.AnswerCache

	doc        docload.Document
	transcript []Exchange
}

// ErrNoDocument is returned by Ask before any document has been loaded.
var ErrNoDocument = errors.New("no document loaded")

func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg}

	switch cfg.Backend {
	case BackendChat:
		provider := llm.NewOpenAI(cfg.LLMBaseURL, cfg.LLMAPIKey)
		a.answerer = &qa.ChatAnswerer{Client: provider, Model: cfg.LLMModel, PerRequestTimeout: cfg.AnswerTimeout}
		// Quick connectivity probe; best-effort, never fails startup.
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if models, err := provider.ListModels(probeCtx); err != nil {
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		} else if len(models.Models) == 0 {
			log.Warn().Msg("LLM returned zero models")
		} else {
			log.Info().Int("count", len(models.Models)).Msg("LLM models available")
		}
	case BackendHTTP:
		a.answerer = &qa.HTTPAnswerer{
			BaseURL:           cfg.QABaseURL,
			Model:             cfg.QAModel,
			HTTPClient:        llm.NewHTTPClient(),
			PerRequestTimeout: cfg.AnswerTimeout,
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if cfg.CacheDir != "" {
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err == nil && n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.cache = &cache.AnswerCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	return a, nil
}

// LoadDocument reads the configured source ("-" means stdin) and replaces
// the current document.
func (a *App) LoadDocument(path string) error {
	var (
		doc docload.Document
		err error
	)
	if path == "-" {
		raw, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return fmt.Errorf("read stdin: %w", rerr)
		}
		doc, err = docload.FromString("stdin", string(raw))
	} else {
		doc, err = docload.Load(path)
	}
	if err != nil {
		return err
	}
	if doc.PagesSkipped > 0 {
		log.Warn().Int("pages", doc.PagesSkipped).Str("document", doc.Name).
			Msg("some pages could not be extracted and were skipped")
	}
	log.Info().Str("document", doc.Name).Int("chars", doc.Chars()).Int("words", doc.Words()).
		Msg("document loaded")
	a.doc = doc
	a.transcript = nil
	return nil
}

// Document returns the currently loaded document.
func (a *App) Document() docload.Document { return a.doc }

// Transcript returns the exchanges answered so far, in order.
func (a *App) Transcript() []Exchange { return a.transcript }

func (a *App) Close() {
	// nothing yet
}
