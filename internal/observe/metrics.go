// Package observe provides application-wide observability primitives for
// sayright: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all sayright metrics.
const meterName = "github.com/MrWong99/sayright"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// AnalyzeDuration tracks end-to-end correction pipeline latency.
	AnalyzeDuration metric.Float64Histogram

	// GrammarServiceDuration tracks external grammar service call latency.
	GrammarServiceDuration metric.Float64Histogram

	// HTTPRequestDuration tracks HTTP request processing time. Use with
	// attributes: attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram

	// --- Counters ---

	// CorrectionsApplied counts applied corrections. Use with attributes:
	//   attribute.String("category", ...), attribute.String("source", ...)
	CorrectionsApplied metric.Int64Counter

	// GrammarServiceRequests counts external grammar service calls. Use with
	// attribute: attribute.String("status", "ok"|"error")
	GrammarServiceRequests metric.Int64Counter

	// --- Gauges ---

	// ActiveStreams tracks the number of open websocket analysis streams.
	ActiveStreams metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) optimised
// for text-analysis latencies: sub-millisecond rule-only requests up to slow
// external service round-trips.
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.AnalyzeDuration, err = m.Float64Histogram("sayright.analyze.duration",
		metric.WithDescription("Latency of the correction pipeline."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.GrammarServiceDuration, err = m.Float64Histogram("sayright.grammar_service.duration",
		metric.WithDescription("Latency of external grammar service calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("sayright.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.CorrectionsApplied, err = m.Int64Counter("sayright.corrections.applied",
		metric.WithDescription("Total corrections applied by category and source."),
	); err != nil {
		return nil, err
	}
	if met.GrammarServiceRequests, err = m.Int64Counter("sayright.grammar_service.requests",
		metric.WithDescription("Total external grammar service calls by status."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveStreams, err = m.Int64UpDownCounter("sayright.active_streams",
		metric.WithDescription("Number of open websocket analysis streams."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordAnalyze records one pipeline run: its duration and the number of
// corrections applied, attributed by source.
func (m *Metrics) RecordAnalyze(ctx context.Context, d time.Duration, corrections map[string]int) {
	m.AnalyzeDuration.Record(ctx, d.Seconds())
	for source, n := range corrections {
		m.CorrectionsApplied.Add(ctx, int64(n),
			metric.WithAttributes(Attr("source", source)),
		)
	}
}

// RecordGrammarService records one external grammar service call with its
// duration and outcome status ("ok" or "error").
func (m *Metrics) RecordGrammarService(ctx context.Context, d time.Duration, status string) {
	m.GrammarServiceDuration.Record(ctx, d.Seconds())
	m.GrammarServiceRequests.Add(ctx, 1,
		metric.WithAttributes(Attr("status", status)),
	)
}
