package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/sayright/internal/engine"
	"github.com/MrWong99/sayright/internal/observe"
)

// batchConcurrency caps the number of sentences analysed in parallel by
// /analyze-batch.
const batchConcurrency = 8

// analyzeRequest is the JSON body of POST /analyze-text.
type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// batchRequest is the JSON body of POST /analyze-batch.
type batchRequest struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
}

// batchResponse is the JSON body of a successful /analyze-batch call.
// Results appear in input order.
type batchResponse struct {
	Results []engine.Result `json:"results"`
}

// errorResponse is the JSON body of a failed request. For internal failures
// it carries a best-effort echo of the input so callers can degrade
// gracefully; stack traces are never included.
type errorResponse struct {
	Error             string              `json:"error"`
	CorrectedSentence string              `json:"corrected_sentence,omitempty"`
	WrongWordCount    int                 `json:"wrong_word_count"`
	Corrections       []engine.Correction `json:"corrections"`
}

// handleAnalyze serves POST /analyze-text.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}
	if msg, ok := validate(req.Text, req.Language); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// An unexpected panic inside the pipeline must not leak internals; the
	// caller still gets an echo of its input.
	defer func() {
		if rec := recover(); rec != nil {
			observe.Logger(ctx).Error("analyze failed", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:             "analysis failed",
				CorrectedSentence: req.Text,
				Corrections:       []engine.Correction{},
			})
		}
	}()

	start := time.Now()
	result := s.engine.Analyze(ctx, req.Text)
	s.metrics.RecordAnalyze(ctx, time.Since(start), countBySource(result.Corrections))

	observe.Logger(ctx).Info("analysis complete",
		"wrong_word_count", result.WrongWordCount,
		"confidence", result.Confidence,
	)
	writeJSON(w, http.StatusOK, result)
}

// handleAnalyzeBatch serves POST /analyze-batch. Sentences are analysed
// concurrently; a panic while processing one item yields an echo result for
// that item and never fails the batch.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "no texts provided")
		return
	}
	if lang := strings.TrimSpace(req.Language); lang != "" && lang != "en" {
		writeError(w, http.StatusBadRequest, "only English is currently supported")
		return
	}

	results := make([]engine.Result, len(req.Texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, text := range req.Texts {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					observe.Logger(gctx).Error("batch item failed", "index", i, "panic", rec)
					results[i] = engine.Result{
						OriginalSentence:  text,
						CorrectedSentence: text,
						Corrections:       []engine.Correction{},
					}
				}
			}()
			start := time.Now()
			results[i] = s.engine.Analyze(gctx, text)
			s.metrics.RecordAnalyze(gctx, time.Since(start), countBySource(results[i].Corrections))
			return nil
		})
	}
	// Workers never return errors; Wait only synchronises completion.
	_ = g.Wait()

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// validate applies the input contract shared by the analysis endpoints.
// Returns a user-facing message when the input is rejected.
func validate(text, language string) (msg string, ok bool) {
	if strings.TrimSpace(text) == "" {
		return "no text provided", false
	}
	if lang := strings.TrimSpace(language); lang != "" && lang != "en" {
		return "only English is currently supported", false
	}
	return "", true
}

// countBySource tallies corrections by their Source for metric attributes.
func countBySource(corrections []engine.Correction) map[string]int {
	counts := make(map[string]int, 2)
	for _, c := range corrections {
		counts[string(c.Source)]++
	}
	return counts
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:       msg,
		Corrections: []engine.Correction{},
	})
}

// writeJSON encodes v as JSON and writes it with the given status code. On
// encoding failure it falls back to a plain-text 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
	}
}
