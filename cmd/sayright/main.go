// Command sayright is the main entry point for the sayright grammar
// correction server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/MrWong99/sayright/internal/config"
	"github.com/MrWong99/sayright/internal/engine"
	"github.com/MrWong99/sayright/internal/engine/vocab"
	"github.com/MrWong99/sayright/internal/health"
	"github.com/MrWong99/sayright/internal/observe"
	"github.com/MrWong99/sayright/internal/server"
	"github.com/MrWong99/sayright/pkg/grammar"
	"github.com/MrWong99/sayright/pkg/grammar/languagetool"
	"github.com/MrWong99/sayright/pkg/grammar/llmcheck"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "sayright: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "sayright: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("sayright starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "sayright",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}

	// ── Correction engine ─────────────────────────────────────────────────────
	svc, err := buildGrammarService(cfg.Grammar)
	if err != nil {
		slog.Error("failed to create grammar service", "err", err, "kind", cfg.Grammar.Kind)
		return 1
	}

	opts := []engine.Option{engine.WithMetrics(observe.DefaultMetrics())}
	if svc != nil {
		opts = append(opts, engine.WithGrammarService(svc))
		if cfg.Grammar.Timeout > 0 {
			opts = append(opts, engine.WithServiceTimeout(cfg.Grammar.Timeout))
		}
		slog.Info("grammar service configured", "kind", cfg.Grammar.Kind)
	} else {
		slog.Info("no grammar service configured — running rule-only")
	}

	if len(cfg.Vocabulary.Words) > 0 {
		opts = append(opts, engine.WithVocabularyMatcher(buildVocabulary(cfg.Vocabulary)))
		slog.Info("vocabulary matcher configured", "words", len(cfg.Vocabulary.Words))
	}

	eng := engine.New(opts...)

	// ── HTTP server ───────────────────────────────────────────────────────────
	h := health.New([]health.Service{
		{Name: "grammar_service", Available: eng.HasGrammarService},
		{Name: "vocabulary", Available: eng.HasVocabulary},
	})

	srv := server.New(cfg.Server.ListenAddr, eng, observe.DefaultMetrics(), h)

	slog.Info("server ready — press Ctrl+C to shut down", "addr", cfg.Server.ListenAddr)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	slog.Info("shutdown signal received, stopping…")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	if err := otelShutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown error", "err", err)
	}
	slog.Info("goodbye")
	return 0
}

// buildGrammarService creates the external grammar backend named by cfg.
// Returns nil when no backend is configured.
func buildGrammarService(cfg config.GrammarConfig) (grammar.Service, error) {
	switch cfg.Kind {
	case "", config.GrammarNone:
		return nil, nil

	case config.GrammarLanguageTool:
		var opts []languagetool.Option
		if cfg.Language != "" {
			opts = append(opts, languagetool.WithLanguage(cfg.Language))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, languagetool.WithTimeout(cfg.Timeout))
		}
		svc, err := languagetool.New(cfg.BaseURL, opts...)
		if err != nil {
			return nil, err
		}
		return svc, nil

	case config.GrammarLLM:
		var backendOpts []anyllmlib.Option
		if cfg.LLM.APIKey != "" {
			backendOpts = append(backendOpts, anyllmlib.WithAPIKey(cfg.LLM.APIKey))
		}
		if cfg.LLM.BaseURL != "" {
			backendOpts = append(backendOpts, anyllmlib.WithBaseURL(cfg.LLM.BaseURL))
		}
		svc, err := llmcheck.New(cfg.LLM.Provider, cfg.LLM.Model, backendOpts)
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unknown grammar service kind %q", cfg.Kind)
	}
}

// buildVocabulary creates the phonetic vocabulary matcher from cfg.
func buildVocabulary(cfg config.VocabularyConfig) *vocab.Matcher {
	var opts []vocab.Option
	if cfg.PhoneticThreshold > 0 {
		opts = append(opts, vocab.WithPhoneticThreshold(cfg.PhoneticThreshold))
	}
	if cfg.FuzzyThreshold > 0 {
		opts = append(opts, vocab.WithFuzzyThreshold(cfg.FuzzyThreshold))
	}
	return vocab.New(cfg.Words, opts...)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
