// Package observe provides application-wide observability primitives for
// starbot: OpenTelemetry metrics with a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API and scraped via
// the standard /metrics endpoint set up by [InitProvider]. A package-level
// default [Metrics] instance ([DefaultMetrics]) is provided for convenience;
// tests should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all starbot metrics.
const meterName = "github.com/pssfleet/starbot"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// FetchDuration tracks remote reference-data fetch latency. Use with
	// attribute.String("family", ...).
	FetchDuration metric.Float64Histogram

	// Fetches counts remote fetch attempts. Use with attributes:
	//   attribute.String("family", ...), attribute.String("status", ...)
	// where status is "ok", "error", or "stale" (error, but a previous
	// snapshot was served instead).
	Fetches metric.Int64Counter

	// SkippedRecords counts records dropped during a fetch because they were
	// missing the family's declared key field. Use with
	// attribute.String("family", ...).
	SkippedRecords metric.Int64Counter

	// Lookups counts name lookups by family and result ("exact", "fuzzy",
	// "miss").
	Lookups metric.Int64Counter

	// CommandDuration tracks slash command handling latency. Use with
	// attribute.String("command", ...).
	CommandDuration metric.Float64Histogram

	// CommandErrors counts failed slash commands by command name.
	CommandErrors metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote API fetches and command handling.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.FetchDuration, err = m.Float64Histogram("starbot.fetch.duration",
		metric.WithDescription("Latency of remote reference-data fetches."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Fetches, err = m.Int64Counter("starbot.fetch.total",
		metric.WithDescription("Total remote fetch attempts by family and status."),
	); err != nil {
		return nil, err
	}
	if met.SkippedRecords, err = m.Int64Counter("starbot.fetch.skipped_records",
		metric.WithDescription("Records dropped during fetch for missing their key field."),
	); err != nil {
		return nil, err
	}
	if met.Lookups, err = m.Int64Counter("starbot.lookup.total",
		metric.WithDescription("Name lookups by family and result."),
	); err != nil {
		return nil, err
	}
	if met.CommandDuration, err = m.Float64Histogram("starbot.command.duration",
		metric.WithDescription("Slash command handling latency by command."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CommandErrors, err = m.Int64Counter("starbot.command.errors",
		metric.WithDescription("Failed slash commands by command."),
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

// RecordFetch records one remote fetch attempt with its duration and outcome.
func (m *Metrics) RecordFetch(ctx context.Context, family, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("family", family),
		attribute.String("status", status),
	)
	m.Fetches.Add(ctx, 1, attrs)
	m.FetchDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("family", family)))
}

// RecordSkippedRecords records records dropped from a fetch generation.
func (m *Metrics) RecordSkippedRecords(ctx context.Context, family string, n int64) {
	m.SkippedRecords.Add(ctx, n,
		metric.WithAttributes(attribute.String("family", family)))
}

// RecordLookup records one name lookup and its result kind.
func (m *Metrics) RecordLookup(ctx context.Context, family, result string) {
	m.Lookups.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("family", family),
			attribute.String("result", result),
		))
}

// RecordCommand records one handled slash command.
func (m *Metrics) RecordCommand(ctx context.Context, command string, seconds float64, err error) {
	m.CommandDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("command", command)))
	if err != nil {
		m.CommandErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("command", command)))
	}
}
