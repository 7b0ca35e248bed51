// Package metrics records per-run scraper metrics with an OpenTelemetry meter
// exported into a private Prometheus registry. The registry can be written out
// in the node-exporter textfile format at the end of a run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"scraper/pkg/domain"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "scraper"

// Recorder collects the metrics of one run. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	linksFound metric.Int64Counter
	downloads  metric.Int64Counter
	bytes      metric.Int64Counter
	duration   metric.Float64Histogram
}

// New creates a Recorder with its own registry and meter provider.
func New() (*Recorder, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := provider.Meter(meterName)

	r := &Recorder{registry: registry, provider: provider}

	if r.linksFound, err = meter.Int64Counter("scraper_links_found",
		metric.WithDescription("Links selected for download after filtering")); err != nil {
		return nil, fmt.Errorf("could not create links counter: %w", err)
	}
	if r.downloads, err = meter.Int64Counter("scraper_downloads",
		metric.WithDescription("Processed links by outcome")); err != nil {
		return nil, fmt.Errorf("could not create downloads counter: %w", err)
	}
	if r.bytes, err = meter.Int64Counter("scraper_download_bytes",
		metric.WithDescription("Bytes written to the destination directory")); err != nil {
		return nil, fmt.Errorf("could not create bytes counter: %w", err)
	}
	if r.duration, err = meter.Float64Histogram("scraper_download_duration_seconds",
		metric.WithDescription("Time spent retrieving and writing one file"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return r, nil
}

// LinksFound records the number of links that survived filtering.
func (r *Recorder) LinksFound(ctx context.Context, n int) {
	if r == nil {
		return
	}
	r.linksFound.Add(ctx, int64(n))
}

// Outcome records a processed link.
func (r *Recorder) Outcome(ctx context.Context, o domain.Outcome) {
	if r == nil {
		return
	}
	r.downloads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeLabel(o.Status))))
	if o.Status != domain.OutcomeSuccess {
		return
	}
	r.bytes.Add(ctx, o.Bytes)
	r.duration.Record(ctx, o.Elapsed.Seconds())
}

// Registry exposes the underlying Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}

	return r.registry
}

// WriteTextfile writes every collected metric to path in the Prometheus text
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("could not write metrics to %s: %w", path, err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := r.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shut down meter provider: %w", err)
	}

	return nil
}

func outcomeLabel(s domain.OutcomeStatus) string {
	switch s {
	case domain.OutcomeSuccess:
		return "success"
	case domain.OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}
