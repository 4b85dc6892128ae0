package app

import (
	"errors"
	"strings"
	"time"
)

// Backend selects which answering implementation the app wires up.
const (
	BackendHTTP = "http"
	BackendChat = "chat"
)

// Config holds runtime configuration for the application.
type Config struct {
	// DocumentPath is the source to load: a file path or "-" for stdin.
	DocumentPath string
	// Question, when set, runs a single ask-and-exit request. Empty means
	// interactive mode.
	Question string

	// Backend is BackendHTTP (extractive inference server) or BackendChat
	// (OpenAI-compatible chat backend emulating span extraction).
	Backend string

	// Extractive inference server (http backend).
	QABaseURL string
	QAModel   string

	// OpenAI-compatible server (chat backend).
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// ContextChars overrides the derived excerpt budget when positive.
	ContextChars int
	// AnswerTimeout bounds each inference call.
	AnswerTimeout time.Duration

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheStrictPerms bool

	// Output
	JSONOutput    bool
	TranscriptMD  string
	TranscriptPDF string
	NoColor       bool

	Verbose bool
}

// ModelName reports the checkpoint/model identifier of the active backend,
// used for budget derivation and cache keys.
func (c Config) ModelName() string {
	if c.Backend == BackendChat {
		return c.LLMModel
	}
	return c.QAModel
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DocumentPath) == "" {
		return errors.New("config: document path is required")
	}
	if cfg.DocumentPath == "-" && strings.TrimSpace(cfg.Question) == "" {
		return errors.New("config: reading the document from stdin requires -q (interactive mode needs stdin for questions)")
	}
	switch cfg.Backend {
	case BackendHTTP:
		if strings.TrimSpace(cfg.QABaseURL) == "" {
			return errors.New("config: qa.base is required for the http backend (or set QA_BASE_URL)")
		}
	case BackendChat:
		if strings.TrimSpace(cfg.LLMModel) == "" {
			return errors.New("config: llm.model is required for the chat backend (or set LLM_MODEL)")
		}
	default:
		return errors.New("config: backend must be \"http\" or \"chat\"")
	}
	if cfg.ContextChars < 0 {
		return errors.New("config: negative context budget is not allowed")
	}
	return nil
}
