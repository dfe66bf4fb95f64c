package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/MrWong99/sayright/internal/engine/vocab"
	"github.com/MrWong99/sayright/internal/observe"
	"github.com/MrWong99/sayright/pkg/grammar"
)

// defaultServiceTimeout bounds the external grammar service call so one slow
// dependency cannot stall a whole request.
const defaultServiceTimeout = 10 * time.Second

// Option is a functional option for configuring an [Engine].
type Option func(*Engine)

// WithGrammarService attaches an external [grammar.Service] whose suggestions
// are merged into the pipeline after the rule pass. When nil (the default),
// the external stage is skipped entirely.
func WithGrammarService(svc grammar.Service) Option {
	return func(e *Engine) {
		e.svc = svc
	}
}

// WithServiceTimeout sets the per-request deadline for the external grammar
// service call. Default: 10s.
func WithServiceTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.svcTimeout = d
		}
	}
}

// WithVocabularyMatcher attaches a [vocab.Matcher] that resolves misheard
// vocabulary words after the rule pass. When nil (the default), the
// vocabulary stage is skipped entirely.
func WithVocabularyMatcher(m *vocab.Matcher) Option {
	return func(e *Engine) {
		e.vocab = m
	}
}

// WithMetrics attaches an [observe.Metrics] instance that records external
// grammar service call latency and outcome.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine applies the correction pipeline to one sentence at a time.
// It is read-only after construction and safe for concurrent use.
type Engine struct {
	rules        []rule
	contractions []rule
	svc          grammar.Service
	svcTimeout   time.Duration
	vocab        *vocab.Matcher
	metrics      *observe.Metrics
}

// New constructs an [Engine] over the built-in pattern table, configured with
// the supplied options. The pattern table is compiled once here; entries that
// fail to compile are skipped, never failing construction.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:        compileRules(grammarPatterns),
		contractions: compileRules(contractionPatterns),
		svcTimeout:   defaultServiceTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// HasGrammarService reports whether an external grammar service is attached.
func (e *Engine) HasGrammarService() bool {
	return e.svc != nil
}

// HasVocabulary reports whether a non-empty vocabulary matcher is attached.
func (e *Engine) HasVocabulary() bool {
	return e.vocab != nil && !e.vocab.Empty()
}

// Analyze runs the full correction pipeline over text and returns a fresh
// [Result].
//
// Stages, in order: trim → grammar-pattern pass → vocabulary pass (optional)
// → external-suggestion merge (optional) → contraction pass → finalize
// (leading capital, terminal punctuation) → dedup and score.
//
// Blank input short-circuits the pipeline: the text is returned unchanged
// with zero corrections and confidence 1.0. External service failures are
// logged and degrade the request to rule-based corrections; Analyze itself
// never fails.
func (e *Engine) Analyze(ctx context.Context, text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{
			OriginalSentence:  text,
			CorrectedSentence: text,
			Corrections:       []Correction{},
			Confidence:        1.0,
		}
	}

	current := trimmed
	var corrections []Correction

	// Grammar/word-usage pattern pass, in declaration order. A substitution
	// that only changes casing (matched span equals the replacement ignoring
	// case) is applied silently.
	for _, r := range e.rules {
		newText, matched := r.replace(current)
		if matched == "" {
			continue
		}
		current = newText
		if strings.EqualFold(matched, r.Right) {
			continue
		}
		corrections = append(corrections, Correction{
			Original:  matched,
			Corrected: r.Right,
			Message:   fmt.Sprintf("%q is more appropriate than %q", r.Right, matched),
			Category:  r.Category,
			Source:    SourceRule,
		})
	}

	// Vocabulary pass: resolve misheard domain words.
	if e.HasVocabulary() {
		var vocabCorrections []Correction
		current, vocabCorrections = e.applyVocabulary(current)
		corrections = append(corrections, vocabCorrections...)
	}

	// External suggestion merge. Any service failure degrades the request to
	// rule-based corrections only.
	if e.svc != nil {
		var externalCorrections []Correction
		current, externalCorrections = e.applyExternal(ctx, current)
		corrections = append(corrections, externalCorrections...)
	}

	// Contraction pass: style normalisation, no visible records.
	for _, r := range e.contractions {
		current, _ = r.replace(current)
	}

	current = finalize(current)

	corrections = dedupe(corrections)
	totalWords := countWords(trimmed)

	return Result{
		OriginalSentence:  trimmed,
		CorrectedSentence: current,
		WrongWordCount:    len(corrections),
		Corrections:       corrections,
		Confidence:        confidence(len(corrections), totalWords),
		TotalWords:        totalWords,
	}
}

// applyExternal asks the grammar service for suggestions on text and applies
// them. A suggestion is applied only when its source span is still present in
// the current text; the first offered replacement is inserted verbatim — no
// case matching, external services are trusted to emit final casing.
func (e *Engine) applyExternal(ctx context.Context, text string) (string, []Correction) {
	cctx, cancel := context.WithTimeout(ctx, e.svcTimeout)
	defer cancel()

	start := time.Now()
	suggestions, err := e.svc.Check(cctx, text)
	if e.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		e.metrics.RecordGrammarService(ctx, time.Since(start), status)
	}
	if err != nil {
		slog.Warn("grammar service unavailable, continuing with rule-based corrections only", "err", err)
		return text, nil
	}

	var corrections []Correction
	for _, s := range suggestions {
		if s.Text == "" || len(s.Replacements) == 0 {
			continue
		}
		replacement := s.Replacements[0]
		if !strings.Contains(text, s.Text) {
			continue
		}
		text = strings.Replace(text, s.Text, replacement, 1)
		corrections = append(corrections, Correction{
			Original:  s.Text,
			Corrected: replacement,
			Message:   s.Message,
			Category:  s.Category,
			Source:    SourceExternal,
		})
	}
	return text, corrections
}

// applyVocabulary runs the phonetic vocabulary matcher over every token of
// text, preserving surrounding punctuation. Matched tokens are replaced with
// the canonical vocabulary spelling; an all-uppercase token keeps its shout.
func (e *Engine) applyVocabulary(text string) (string, []Correction) {
	tokens := strings.Fields(text)
	var corrections []Correction
	changed := false

	for i, tok := range tokens {
		prefix, core, suffix := splitToken(tok)
		if core == "" {
			continue
		}
		corrected, _, ok := e.vocab.Match(core)
		if !ok {
			continue
		}
		rendered := corrected
		if isUpper(core) {
			rendered = strings.ToUpper(corrected)
		}
		tokens[i] = prefix + rendered + suffix
		changed = true
		corrections = append(corrections, Correction{
			Original:  core,
			Corrected: rendered,
			Message:   fmt.Sprintf("%q is more appropriate than %q", rendered, core),
			Category:  CategoryVocabulary,
			Source:    SourceRule,
		})
	}

	if !changed {
		return text, nil
	}
	return strings.Join(tokens, " "), corrections
}

// finalize applies sentence polish: uppercase the first rune and append a
// period unless the text already ends in terminal punctuation.
func finalize(text string) string {
	if text == "" {
		return text
	}
	text = capitalizeFirst(text)
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}

// splitToken splits a whitespace token into leading punctuation, the letter
// and digit core, and trailing punctuation.
func splitToken(tok string) (prefix, core, suffix string) {
	runes := []rune(tok)
	start := 0
	for start < len(runes) && !isWordRune(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && !isWordRune(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
