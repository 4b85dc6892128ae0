package app

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// envConfig mirrors the environment surface. Parsed separately and then
// overlaid so that explicit flags keep precedence over env, and env keeps
// precedence over file config.
type envConfig struct {
	Backend       string        `env:"QA_BACKEND"`
	QABaseURL     string        `env:"QA_BASE_URL"`
	QAModel       string        `env:"QA_MODEL"`
	LLMBaseURL    string        `env:"LLM_BASE_URL"`
	LLMModel      string        `env:"LLM_MODEL"`
	LLMAPIKey     string        `env:"LLM_API_KEY"`
	ContextChars  int           `env:"CONTEXT_CHARS"`
	AnswerTimeout time.Duration `env:"ANSWER_TIMEOUT"`
	CacheDir      string        `env:"CACHE_DIR"`
	CacheMaxAge   time.Duration `env:"CACHE_MAX_AGE"`
	CacheStrict   bool          `env:"CACHE_STRICT_PERMS"`
	Verbose       bool          `env:"VERBOSE"`
	NoColor       bool          `env:"NO_COLOR"`
}

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}
	if cfg.Backend == "" && ec.Backend != "" {
		cfg.Backend = ec.Backend
	}
	if cfg.QABaseURL == "" {
		cfg.QABaseURL = ec.QABaseURL
	}
	if cfg.QAModel == "" {
		cfg.QAModel = ec.QAModel
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = ec.LLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = ec.LLMModel
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = ec.LLMAPIKey
	}
	if cfg.ContextChars == 0 && ec.ContextChars > 0 {
		cfg.ContextChars = ec.ContextChars
	}
	if cfg.AnswerTimeout == 0 && ec.AnswerTimeout > 0 {
		cfg.AnswerTimeout = ec.AnswerTimeout
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = ec.CacheDir
	}
	if cfg.CacheMaxAge == 0 && ec.CacheMaxAge > 0 {
		cfg.CacheMaxAge = ec.CacheMaxAge
	}
	if !cfg.CacheStrictPerms && ec.CacheStrict {
		cfg.CacheStrictPerms = true
	}
	if !cfg.Verbose && ec.Verbose {
		cfg.Verbose = true
	}
	if !cfg.NoColor && ec.NoColor {
		cfg.NoColor = true
	}
	return nil
}
