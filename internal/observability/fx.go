// Package observability bundles logging, tracing and metrics into one fx
// module keyed off the service configuration.
package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/druckwerk/belegdesigner/internal/config"
	"github.com/druckwerk/belegdesigner/internal/observability/logger"
	"github.com/druckwerk/belegdesigner/internal/observability/metrics"
	"github.com/druckwerk/belegdesigner/internal/observability/tracing"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Environment)
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}
}

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Tracing.Enabled,
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Tracing.Endpoint,
		ExporterProtocol: cfg.Tracing.Protocol,
		SamplingRatio:    cfg.Tracing.SamplingRatio,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}

var Module = fx.Module("observability",
	fx.Provide(newLogger),
	fx.Provide(newMetricsConfig),
	fx.Provide(newTracingConfig),
	fx.Provide(newMeterProvider),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(tracing.NewProvider),
	fx.Invoke(func(cfg metrics.Config) {
		metrics.DesignerWithConfig(cfg)
	}),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)
