package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/app"
	"github.com/hyperifyio/goanswer/internal/docload"
	"github.com/hyperifyio/goanswer/internal/qa"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional and never overrides the real environment.
	_ = godotenv.Load()

	var (
		docPath       string
		question      string
		configPath    string
		backend       string
		qaBaseURL     string
		qaModel       string
		llmBaseURL    string
		llmModel      string
		llmKey        string
		contextChars  int
		answerTimeout time.Duration
		cacheDir      string
		cacheMaxAge   time.Duration
		cacheStrict   bool
		jsonOutput    bool
		transcriptMD  string
		transcriptPDF string
		noColor       bool
		verbose       bool
	)

	flag.StringVar(&docPath, "doc", "", "Path to the document to question (.txt, .md, .html, .pdf), or '-' for stdin")
	flag.StringVar(&question, "q", "", "Ask a single question and exit; omit for interactive mode")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.StringVar(&backend, "backend", "", "Answering backend: 'http' (extractive inference server) or 'chat' (OpenAI-compatible)")
	flag.StringVar(&qaBaseURL, "qa.base", "", "Extractive QA inference server base URL")
	flag.StringVar(&qaModel, "qa.model", "", "Extractive QA checkpoint name (default deepset/roberta-base-squad2)")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL for the chat backend")
	flag.StringVar(&llmModel, "llm.model", "", "Model name for the chat backend")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the chat backend")
	flag.IntVar(&contextChars, "context.chars", 0, "Override the context window budget in characters (0 derives it from the model)")
	flag.DurationVar(&answerTimeout, "answer.timeout", 0, "Per-question inference timeout (default 30s)")
	flag.StringVar(&cacheDir, "cache.dir", "", "Answer cache directory (default .goanswer-cache; 'off' disables)")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	flag.BoolVar(&cacheStrict, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	flag.BoolVar(&jsonOutput, "json", false, "Emit answers as JSON {answer, confidence, context_used}")
	flag.StringVar(&transcriptMD, "output", "", "Write the session transcript to a Markdown file")
	flag.StringVar(&transcriptPDF, "output.pdf", "", "Write the session transcript to a PDF file")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		DocumentPath:     docPath,
		Question:         question,
		Backend:          backend,
		QABaseURL:        qaBaseURL,
		QAModel:          qaModel,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		ContextChars:     contextChars,
		AnswerTimeout:    answerTimeout,
		CacheDir:         cacheDir,
		CacheMaxAge:      cacheMaxAge,
		CacheStrictPerms: cacheStrict,
		JSONOutput:       jsonOutput,
		TranscriptMD:     transcriptMD,
		TranscriptPDF:    transcriptPDF,
		NoColor:          noColor,
		Verbose:          verbose,
	}

	// Precedence: flags > environment > config file > built-in defaults.
	if err := app.ApplyEnvToConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "environment: %v\n", err)
		os.Exit(2)
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config file: %v\n", err)
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	applyDefaults(&cfg)

	if err := app.ValidateConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when no answer could possibly be produced
		// (unreadable/empty document, backend unavailable); 1 otherwise.
		if errors.Is(err, docload.ErrEmptyDocument) || errors.Is(err, qa.ErrUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func applyDefaults(cfg *app.Config) {
	if cfg.Backend == "" {
		cfg.Backend = app.BackendHTTP
	}
	if cfg.QAModel == "" {
		cfg.QAModel = "deepset/roberta-base-squad2"
	}
	if cfg.AnswerTimeout == 0 {
		cfg.AnswerTimeout = 30 * time.Second
	}
	switch cfg.CacheDir {
	case "":
		cfg.CacheDir = ".goanswer-cache"
	case "off":
		cfg.CacheDir = ""
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
