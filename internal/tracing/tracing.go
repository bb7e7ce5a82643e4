package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type ShutdownFunc func(context.Context) error

// Setup installs a global OTLP/HTTP tracer provider. When tracing is
// disabled the global no-op provider is left in place.
func Setup(ctx context.Context, cfg *config.OTelConfig) (ShutdownFunc, error) {

	if !cfg.Enabled {
		slog.Info("Tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg.ExporterEndpoint)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("Tracing enabled",
		slog.String("service", cfg.ServiceName),
		slog.String("endpoint", cfg.ExporterEndpoint),
		slog.Float64("sampler_ratio", cfg.SamplerRatio),
	)

	return provider.Shutdown, nil
}

// endpoint may be a full URL or a bare host:port, which is sent over plain HTTP.
func exporterOptions(endpoint string) []otlptracehttp.Option {
	switch {
	case endpoint == "":
		return nil
	case strings.Contains(endpoint, "://"):
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	default:
		return []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure()}
	}
}
