package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration parses human-readable durations ("30s", "24h") from both YAML
// and JSON, which neither codec does for time.Duration on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parse(value.Value)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("parse duration: %s", b)
	}
	*d = Duration(n)
	return nil
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag namespace.
type FileConfig struct {
	Document string `yaml:"document" json:"document"`
	Backend  string `yaml:"backend" json:"backend"`

	QA struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
	} `yaml:"qa" json:"qa"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	ContextChars  int      `yaml:"contextChars" json:"contextChars"`
	AnswerTimeout Duration `yaml:"answerTimeout" json:"answerTimeout"`

	Cache struct {
		Dir         string   `yaml:"dir" json:"dir"`
		MaxAge      Duration `yaml:"maxAge" json:"maxAge"`
		StrictPerms bool     `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Output struct {
		JSON          bool   `yaml:"json" json:"json"`
		TranscriptMD  string `yaml:"transcript" json:"transcript"`
		TranscriptPDF string `yaml:"transcriptPDF" json:"transcriptPDF"`
		NoColor       bool   `yaml:"noColor" json:"noColor"`
	} `yaml:"output" json:"output"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset/zero. Flags and env should already have been
// applied; file config supplies remaining defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.DocumentPath == "" && fc.Document != "" {
		cfg.DocumentPath = fc.Document
	}
	if cfg.Backend == "" && fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if cfg.QABaseURL == "" && fc.QA.BaseURL != "" {
		cfg.QABaseURL = fc.QA.BaseURL
	}
	if cfg.QAModel == "" && fc.QA.Model != "" {
		cfg.QAModel = fc.QA.Model
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.ContextChars == 0 && fc.ContextChars > 0 {
		cfg.ContextChars = fc.ContextChars
	}
	if cfg.AnswerTimeout == 0 && fc.AnswerTimeout > 0 {
		cfg.AnswerTimeout = time.Duration(fc.AnswerTimeout)
	}
	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if !cfg.JSONOutput && fc.Output.JSON {
		cfg.JSONOutput = true
	}
	if cfg.TranscriptMD == "" && fc.Output.TranscriptMD != "" {
		cfg.TranscriptMD = fc.Output.TranscriptMD
	}
	if cfg.TranscriptPDF == "" && fc.Output.TranscriptPDF != "" {
		cfg.TranscriptPDF = fc.Output.TranscriptPDF
	}
	if !cfg.NoColor && fc.Output.NoColor {
		cfg.NoColor = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
