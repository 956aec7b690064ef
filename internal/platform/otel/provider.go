// Package otel configures the process-wide OpenTelemetry tracer provider.
package otel

import (
	"context"
	"strings"

	"github.com/louisbranch/storefront/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Options controls tracer provider setup.
type Options struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	Endpoint string `env:"STOREFRONT_OTEL_ENDPOINT"`
	// Enabled set to "false" disables tracing even when Endpoint is set.
	Enabled string `env:"STOREFRONT_OTEL_ENABLED"`
}

// Active reports whether the options ask for a real exporter.
func (o Options) Active() bool {
	if strings.EqualFold(strings.TrimSpace(o.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(o.Endpoint) != ""
}

// LoadOptions reads tracing options from the environment.
func LoadOptions() (Options, error) {
	var opts Options
	if err := config.ParseEnv(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Setup initialises OpenTelemetry tracing for the given service using
// options from the environment.
//
// Tracing is opt-in: when STOREFRONT_OTEL_ENDPOINT is empty or
// STOREFRONT_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and no global provider is registered.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	opts, err := LoadOptions()
	if err != nil {
		return func(context.Context) error { return nil }, err
	}
	return SetupWithOptions(ctx, serviceName, opts)
}

// SetupWithOptions is Setup with explicit options.
func SetupWithOptions(ctx context.Context, serviceName string, opts Options) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !opts.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(opts.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
