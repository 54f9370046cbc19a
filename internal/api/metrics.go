package api

import (
	"context"
	"time"

	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/coding1100/appointment-setter-console/internal/config"
)

var (
	requestCounter  metric.Int64Counter
	requestDuration metric.Int64Histogram
	refreshCounter  metric.Int64Counter
)

// InitMeters registers the pipeline meters. Commands that skip telemetry can
// skip this; recording is a no-op until it runs.
func InitMeters(ctx context.Context, cfg *config.Config) error {
	meter := otel.Meter(
		"setter-console/"+cfg.Application.Name,
		metric.WithInstrumentationVersion(otel.Version()),
		metric.WithInstrumentationAttributes(otlp.CreateAttributesFrom(cfg.Application)...),
	)

	var err error

	requestCounter, err = meter.Int64Counter(
		"http.client.request_count",
		metric.WithDescription("Outbound request count"),
		metric.WithUnit("request"),
	)
	if err != nil {
		return oops.In("API Client").
			WithContext(ctx).
			Wrapf(err, "creating request_count meter")
	}

	requestDuration, err = meter.Int64Histogram(
		"http.client.duration",
		metric.WithDescription("Outbound end to end duration"),
		metric.WithUnit("milliseconds"),
	)
	if err != nil {
		return oops.In("API Client").
			WithContext(ctx).
			Wrapf(err, "creating duration meter")
	}

	refreshCounter, err = meter.Int64Counter(
		"session.refresh_count",
		metric.WithDescription("Access token refresh count"),
		metric.WithUnit("refresh"),
	)
	if err != nil {
		return oops.In("API Client").
			WithContext(ctx).
			Wrapf(err, "creating refresh_count meter")
	}

	return nil
}

func recordRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	if requestCounter == nil || requestDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	requestCounter.Add(ctx, 1, attrs)
	requestDuration.Record(ctx, int64(elapsed/time.Millisecond), attrs)
}

// RecordRefresh counts one settled token refresh attempt.
func RecordRefresh(ctx context.Context, success bool) {
	if refreshCounter == nil {
		return
	}

	refreshCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}
