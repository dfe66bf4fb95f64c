package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/MrWong99/sayright/internal/engine"
	"github.com/MrWong99/sayright/internal/observe"
)

// streamRequest is one message on the /analyze-stream websocket.
type streamRequest struct {
	Text string `json:"text"`
}

// streamError is sent for a message that could not be analysed. The stream
// stays open afterwards.
type streamError struct {
	Error string `json:"error"`
}

// handleAnalyzeStream serves GET /analyze-stream, upgrading to a websocket
// where each text message is analysed and answered with a Result. The
// connection closes when the client disconnects or the server shuts down.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observe.Logger(ctx)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	s.metrics.ActiveStreams.Add(ctx, 1)
	defer s.metrics.ActiveStreams.Add(ctx, -1)

	log.Info("analysis stream opened", "remote_addr", r.RemoteAddr)

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || ctx.Err() != nil {
				log.Info("analysis stream closed")
			} else {
				log.Warn("analysis stream read failed", "error", err)
			}
			return
		}
		if msgType != websocket.MessageText {
			writeStream(ctx, conn, streamError{Error: "text messages only"})
			continue
		}

		var req streamRequest
		if err := json.Unmarshal(data, &req); err != nil {
			writeStream(ctx, conn, streamError{Error: "no data provided"})
			continue
		}
		if strings.TrimSpace(req.Text) == "" {
			writeStream(ctx, conn, streamError{Error: "no text provided"})
			continue
		}

		result := s.analyzeStreamItem(ctx, req.Text)
		if !writeStream(ctx, conn, result) {
			return
		}
	}
}

// analyzeStreamItem runs one analysis, converting a pipeline panic into an
// echo result so a single bad message never tears down the stream.
func (s *Server) analyzeStreamItem(ctx context.Context, text string) (result engine.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			observe.Logger(ctx).Error("stream analysis failed", "panic", rec)
			result = engine.Result{
				OriginalSentence:  text,
				CorrectedSentence: text,
				Corrections:       []engine.Correction{},
			}
		}
	}()
	start := time.Now()
	result = s.engine.Analyze(ctx, text)
	s.metrics.RecordAnalyze(ctx, time.Since(start), countBySource(result.Corrections))
	return result
}

// writeStream marshals v and sends it as a text message. Returns false when
// the connection is no longer usable.
func writeStream(ctx context.Context, conn *websocket.Conn, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		observe.Logger(ctx).Error("stream encode failed", "error", err)
		return true
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		observe.Logger(ctx).Warn("analysis stream write failed", "error", err)
		return false
	}
	return true
}
