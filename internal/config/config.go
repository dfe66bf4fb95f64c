// Package config provides the configuration schema and loader for the
// sayright grammar correction service.
package config

import "time"

// LogLevel controls log verbosity for the sayright server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// GrammarKind selects the external grammar checking backend.
type GrammarKind string

const (
	// GrammarNone disables the external stage; the pipeline runs rule-only.
	GrammarNone GrammarKind = "none"

	// GrammarLanguageTool checks against a LanguageTool server.
	GrammarLanguageTool GrammarKind = "languagetool"

	// GrammarLLM checks through a language model via any-llm-go.
	GrammarLLM GrammarKind = "llm"
)

// IsValid reports whether k is a recognised grammar backend kind.
func (k GrammarKind) IsValid() bool {
	switch k {
	case GrammarNone, GrammarLanguageTool, GrammarLLM:
		return true
	}
	return false
}

// Config is the root configuration structure for sayright.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Grammar    GrammarConfig    `yaml:"grammar"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// ShutdownTimeout bounds graceful shutdown. Default: 15s.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GrammarConfig selects and configures the external grammar service.
type GrammarConfig struct {
	// Kind chooses the backend: "none", "languagetool", or "llm".
	// An empty value means "none".
	Kind GrammarKind `yaml:"kind"`

	// BaseURL is the LanguageTool server address (kind: languagetool).
	BaseURL string `yaml:"base_url"`

	// Language is the LanguageTool language code. Default: "en-US".
	Language string `yaml:"language"`

	// Timeout bounds each external check call. Default: 10s.
	Timeout time.Duration `yaml:"timeout"`

	// LLM configures the language-model backend (kind: llm).
	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig identifies the any-llm-go provider used when Grammar.Kind is
// "llm".
type LLMConfig struct {
	// Provider is the backend name (e.g., "openai", "anthropic", "ollama").
	Provider string `yaml:"provider"`

	// Model is the model identifier (e.g., "gpt-4o", "llama3.2").
	Model string `yaml:"model"`

	// APIKey authenticates against hosted providers. When empty the backend
	// falls back to its usual environment variable.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the backend address, mainly for local servers.
	BaseURL string `yaml:"base_url"`
}

// VocabularyConfig configures the optional phonetic vocabulary matcher.
// With an empty word list the vocabulary stage is disabled.
type VocabularyConfig struct {
	// Words is the list of canonical vocabulary spellings.
	Words []string `yaml:"words"`

	// PhoneticThreshold is the minimum similarity for phonetic candidates
	// (0 means the matcher default).
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum similarity for the fuzzy fallback
	// (0 means the matcher default).
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}
