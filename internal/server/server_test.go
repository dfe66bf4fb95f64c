package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coder/websocket"

	"github.com/MrWong99/sayright/internal/engine"
	"github.com/MrWong99/sayright/internal/health"
	"github.com/MrWong99/sayright/internal/observe"
	"github.com/MrWong99/sayright/internal/server"
)

// newTestServer builds a Server around a default engine and returns its
// handler for in-process requests.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	eng := engine.New()
	h := health.New([]health.Service{
		{Name: "grammar_service", Available: eng.HasGrammarService},
		{Name: "vocabulary", Available: eng.HasVocabulary},
	})
	return server.New(":0", eng, observe.DefaultMetrics(), h).Handler()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// ── POST /analyze-text ────────────────────────────────────────────────────────

func TestAnalyzeText_OK(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	rec := postJSON(t, handler, "/analyze-text", `{"text": "i are happy"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var result engine.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.CorrectedSentence != "I am happy." {
		t.Errorf("corrected_sentence = %q, want %q", result.CorrectedSentence, "I am happy.")
	}
	if result.WrongWordCount != 1 {
		t.Errorf("wrong_word_count = %d, want 1", result.WrongWordCount)
	}
	if result.Corrections == nil {
		t.Error("corrections is nil, want non-nil")
	}
}

func TestAnalyzeText_ExplicitEnglishAccepted(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	rec := postJSON(t, handler, "/analyze-text", `{"text": "hello there", "language": "en"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeText_BadRequests(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "no data provided"},
		{"malformed json", "{not json", "no data provided"},
		{"missing text", `{}`, "no text provided"},
		{"blank text", `{"text": "   "}`, "no text provided"},
		{"unsupported language", `{"text": "hola", "language": "es"}`, "only English is currently supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(t, handler, "/analyze-text", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
			var body struct {
				Error       string              `json:"error"`
				Corrections []engine.Correction `json:"corrections"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
			if body.Corrections == nil {
				t.Error("corrections is nil, want non-nil empty slice")
			}
		})
	}
}

func TestAnalyzeText_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/analyze-text", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

// ── POST /analyze-batch ───────────────────────────────────────────────────────

func TestAnalyzeBatch_OK(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	rec := postJSON(t, handler, "/analyze-batch", `{"texts": ["i are happy", "me name is john", ""]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Results []engine.Result `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(body.Results))
	}
	// Input order is preserved.
	if body.Results[0].CorrectedSentence != "I am happy." {
		t.Errorf("results[0] = %q, want %q", body.Results[0].CorrectedSentence, "I am happy.")
	}
	if body.Results[1].CorrectedSentence != "My name is john." {
		t.Errorf("results[1] = %q, want %q", body.Results[1].CorrectedSentence, "My name is john.")
	}
	// Blank entries pass through unchanged.
	if body.Results[2].CorrectedSentence != "" {
		t.Errorf("results[2] = %q, want empty", body.Results[2].CorrectedSentence)
	}
}

func TestAnalyzeBatch_EmptyList(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	rec := postJSON(t, handler, "/analyze-batch", `{"texts": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// ── GET /analyze-stream ───────────────────────────────────────────────────────

func TestAnalyzeStream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestServer(t))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/analyze-stream"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	if err := conn.Write(ctx, websocket.MessageText, []byte(`{"text": "i are happy"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var result engine.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if result.CorrectedSentence != "I am happy." {
		t.Errorf("corrected_sentence = %q, want %q", result.CorrectedSentence, "I am happy.")
	}

	// A bad message yields an error reply but keeps the stream open.
	if err := conn.Write(ctx, websocket.MessageText, []byte(`{"text": ""}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, data, err = conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read after bad message: %v", err)
	}
	var errReply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &errReply); err != nil {
		t.Fatalf("decode error reply: %v", err)
	}
	if errReply.Error != "no text provided" {
		t.Errorf("error = %q, want %q", errReply.Error, "no text provided")
	}

	// The stream still analyses after the error.
	if err := conn.Write(ctx, websocket.MessageText, []byte(`{"text": "i buyed milk"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, data, err = conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read after recovery: %v", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if result.CorrectedSentence != "I bought milk." {
		t.Errorf("corrected_sentence = %q, want %q", result.CorrectedSentence, "I bought milk.")
	}
}

// ── Shared routes ─────────────────────────────────────────────────────────────

func TestHealthRoute(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if _, ok := body.Services["grammar_service"]; !ok {
		t.Error("services missing grammar_service flag")
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	handler := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
