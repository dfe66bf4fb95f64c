// Package languagetool provides a [grammar.Service] backed by a LanguageTool
// server (https://languagetool.org), self-hosted or the public API.
//
// It submits text to POST <baseURL>/v2/check as a form-encoded request and
// normalises the JSON match list into [grammar.Suggestion] values. Every
// transport, status, or decode failure is mapped to an error wrapping
// [grammar.ErrUnavailable] so the caller can degrade to rule-based checking.
//
// Usage:
//
//	svc, err := languagetool.New("http://localhost:8010",
//	    languagetool.WithLanguage("en-US"),
//	    languagetool.WithTimeout(5*time.Second),
//	)
//	suggestions, err := svc.Check(ctx, "he are happy")
package languagetool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrWong99/sayright/pkg/grammar"
)

const (
	defaultLanguage = "en-US"
	defaultTimeout  = 10 * time.Second
)

// Compile-time assertion that Service implements grammar.Service.
var _ grammar.Service = (*Service)(nil)

// Option is a functional option for configuring a [Service].
type Option func(*Service)

// WithLanguage sets the LanguageTool language code (e.g., "en-US", "en-GB").
// Defaults to "en-US".
func WithLanguage(lang string) Option {
	return func(s *Service) {
		s.language = lang
	}
}

// WithTimeout sets the total HTTP request timeout. Defaults to 10s.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Mainly useful in tests.
// The client's Timeout is preserved as-is.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.client = c
	}
}

// Service implements [grammar.Service] against a LanguageTool server.
// It is safe for concurrent use.
type Service struct {
	baseURL  string
	language string
	client   *http.Client
}

// New creates a Service for the LanguageTool server at baseURL
// (e.g., "http://localhost:8010"). baseURL must be non-empty.
func New(baseURL string, opts ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, errors.New("languagetool: baseURL must not be empty")
	}
	s := &Service{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: defaultLanguage,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// checkResponse mirrors the subset of the LanguageTool /v2/check JSON
// response the service consumes.
type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Context struct {
			Text   string `json:"text"`
			Offset int    `json:"offset"`
			Length int    `json:"length"`
		} `json:"context"`
		Rule struct {
			Category struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"category"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text to the LanguageTool server and returns the normalised
// suggestions. Every failure is reported as an error wrapping
// [grammar.ErrUnavailable].
func (s *Service) Check(ctx context.Context, text string) ([]grammar.Suggestion, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", s.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("languagetool: build request: %w", errors.Join(grammar.ErrUnavailable, err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("languagetool: check: %w", errors.Join(grammar.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("languagetool: check: unexpected status %d: %w", resp.StatusCode, grammar.ErrUnavailable)
	}

	var body checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("languagetool: decode response: %w", errors.Join(grammar.ErrUnavailable, err))
	}

	suggestions := make([]grammar.Suggestion, 0, len(body.Matches))
	for _, m := range body.Matches {
		if len(m.Replacements) == 0 {
			continue
		}
		replacements := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			replacements = append(replacements, r.Value)
		}
		suggestions = append(suggestions, grammar.Suggestion{
			Text:         spanText(text, m.Offset, m.Length),
			Offset:       m.Offset,
			Length:       m.Length,
			Replacements: replacements,
			Message:      m.Message,
			Category:     m.Rule.Category.ID,
		})
	}
	return suggestions, nil
}

// spanText extracts the [offset, offset+length) slice of text, clamped to
// valid bounds. LanguageTool offsets are trusted but never blindly indexed.
func spanText(text string, offset, length int) string {
	if offset < 0 || length <= 0 || offset >= len(text) {
		return ""
	}
	end := offset + length
	if end > len(text) {
		end = len(text)
	}
	return text[offset:end]
}
