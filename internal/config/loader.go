package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [Validate] when the corresponding field is unset.
const (
	DefaultListenAddr      = ":8080"
	DefaultGrammarLanguage = "en-US"
	DefaultGrammarTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values and fills in
// defaults for unset fields. It returns a joined error listing all
// validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Grammar service
	if cfg.Grammar.Kind == "" {
		cfg.Grammar.Kind = GrammarNone
	}
	if !cfg.Grammar.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("grammar.kind %q is invalid; valid values: none, languagetool, llm", cfg.Grammar.Kind))
	}
	if cfg.Grammar.Language == "" {
		cfg.Grammar.Language = DefaultGrammarLanguage
	}
	if cfg.Grammar.Timeout <= 0 {
		cfg.Grammar.Timeout = DefaultGrammarTimeout
	}
	switch cfg.Grammar.Kind {
	case GrammarLanguageTool:
		if cfg.Grammar.BaseURL == "" {
			errs = append(errs, errors.New("grammar.base_url is required when grammar.kind is languagetool"))
		}
	case GrammarLLM:
		if cfg.Grammar.LLM.Provider == "" {
			errs = append(errs, errors.New("grammar.llm.provider is required when grammar.kind is llm"))
		}
		if cfg.Grammar.LLM.Model == "" {
			errs = append(errs, errors.New("grammar.llm.model is required when grammar.kind is llm"))
		}
	}

	// Vocabulary thresholds
	if t := cfg.Vocabulary.PhoneticThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("vocabulary.phonetic_threshold %.2f is out of range [0, 1]", t))
	}
	if t := cfg.Vocabulary.FuzzyThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("vocabulary.fuzzy_threshold %.2f is out of range [0, 1]", t))
	}

	return errors.Join(errs...)
}
