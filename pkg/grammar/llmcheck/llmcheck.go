// Package llmcheck provides a [grammar.Service] backed by a language model
// through github.com/mozilla-ai/any-llm-go, the unified multi-provider LLM
// interface (OpenAI, Anthropic, Gemini, Ollama, and others).
//
// The model is instructed, via a conservative system prompt, to report only
// clear grammatical errors and to answer with a strict JSON structure that is
// parsed into [grammar.Suggestion] values. Per the service contract, every
// failure — transport errors, empty responses, unparseable JSON — is mapped
// to an error wrapping [grammar.ErrUnavailable] so the correction pipeline
// degrades to rule-based operation.
//
// Usage:
//
//	svc, err := llmcheck.New("ollama", "llama3.2",
//	    anyllmlib.WithBaseURL("http://localhost:11434"))
//	suggestions, err := svc.Check(ctx, "he are happy")
package llmcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"

	"github.com/MrWong99/sayright/pkg/grammar"
)

const defaultTemperature = 0.1

// systemPrompt instructs the model to act as a narrow grammar checker with a
// machine-readable response.
const systemPrompt = `You are a grammar checker for transcribed speech.

Your task: report grammatical errors in the provided sentence.

Rules:
- ONLY report clear grammatical errors (agreement, verb form, article, preposition misuse).
- Do NOT rewrite style, punctuation, or word choice that is already acceptable.
- "text" must be the exact substring from the sentence, character for character.
- Be conservative - when unsure, report nothing.

Respond with ONLY a JSON object in this exact format (no markdown, no prose):
{
  "suggestions": [
    {"text": "<exact erroneous substring>", "replacement": "<corrected substring>", "message": "<short explanation>", "category": "<GRAMMAR|WORD_USAGE|TYPOS>"}
  ]
}

If the sentence is correct, return an empty suggestions array.`

// Compile-time assertion that Service implements grammar.Service.
var _ grammar.Service = (*Service)(nil)

// Option is a functional option for configuring a [Service].
type Option func(*Service)

// WithTemperature sets the sampling temperature. Lower values produce more
// deterministic checks. Default: 0.1.
func WithTemperature(temp float64) Option {
	return func(s *Service) {
		s.temperature = temp
	}
}

// Service implements [grammar.Service] on top of an any-llm-go backend.
// It is safe for concurrent use.
type Service struct {
	backend     anyllmlib.Provider
	model       string
	temperature float64
}

// New creates a Service for the given LLM provider name and model.
//
// providerName is one of: "openai", "anthropic", "gemini", "ollama",
// "mistral". backendOpts are any-llm-go options such as
// anyllmlib.WithAPIKey or anyllmlib.WithBaseURL; without an API key option
// the backend falls back to its usual environment variable.
func New(providerName, model string, backendOpts []anyllmlib.Option, opts ...Option) (*Service, error) {
	if model == "" {
		return nil, errors.New("llmcheck: model must not be empty")
	}
	backend, err := createBackend(providerName, backendOpts...)
	if err != nil {
		return nil, fmt.Errorf("llmcheck: create %q backend: %w", providerName, err)
	}
	s := &Service{
		backend:     backend,
		model:       model,
		temperature: defaultTemperature,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// createBackend builds the underlying any-llm-go provider for providerName.
func createBackend(providerName string, opts ...anyllmlib.Option) (anyllmlib.Provider, error) {
	switch strings.ToLower(providerName) {
	case "openai":
		return anyllmoai.New(opts...)
	case "anthropic":
		return anthropic.New(opts...)
	case "gemini":
		return gemini.New(opts...)
	case "ollama":
		return ollama.New(opts...)
	case "mistral":
		return mistral.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider %q; supported: openai, anthropic, gemini, ollama, mistral", providerName)
	}
}

// llmResponse is the expected JSON structure returned by the model.
type llmResponse struct {
	Suggestions []struct {
		Text        string `json:"text"`
		Replacement string `json:"replacement"`
		Message     string `json:"message"`
		Category    string `json:"category"`
	} `json:"suggestions"`
}

// Check asks the model for grammar suggestions on text. Transport failures,
// empty responses, and unparseable output all wrap [grammar.ErrUnavailable].
func (s *Service) Check(ctx context.Context, text string) ([]grammar.Suggestion, error) {
	temp := s.temperature
	resp, err := s.backend.Completion(ctx, anyllmlib.CompletionParams{
		Model:       s.model,
		Temperature: &temp,
		Messages: []anyllmlib.Message{
			{Role: anyllmlib.RoleSystem, Content: systemPrompt},
			{Role: anyllmlib.RoleUser, Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llmcheck: completion: %w", errors.Join(grammar.ErrUnavailable, err))
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llmcheck: empty choices in response: %w", grammar.ErrUnavailable)
	}

	return parseSuggestions(text, resp.Choices[0].Message.ContentString())
}

// parseSuggestions extracts grammar suggestions from the model's raw answer.
// Spans not present verbatim in the checked text are dropped.
func parseSuggestions(text, raw string) ([]grammar.Suggestion, error) {
	content := stripMarkdown(raw)

	var parsed llmResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("llmcheck: parse response: %w", errors.Join(grammar.ErrUnavailable, err))
	}

	suggestions := make([]grammar.Suggestion, 0, len(parsed.Suggestions))
	for _, sg := range parsed.Suggestions {
		if sg.Text == "" || sg.Replacement == "" || sg.Text == sg.Replacement {
			continue
		}
		offset := strings.Index(text, sg.Text)
		if offset < 0 {
			// Model hallucinated a span that is not in the input.
			continue
		}
		suggestions = append(suggestions, grammar.Suggestion{
			Text:         sg.Text,
			Offset:       offset,
			Length:       len(sg.Text),
			Replacements: []string{sg.Replacement},
			Message:      sg.Message,
			Category:     sg.Category,
		})
	}
	return suggestions, nil
}

// stripMarkdown removes a surrounding markdown code fence, with or without a
// language tag, from an LLM response.
func stripMarkdown(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
