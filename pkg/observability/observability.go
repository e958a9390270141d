// Package observability builds the logger, tracer and metrics registry shared by
// every module.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config selects how telemetry is produced.
type Config struct {
	ServiceName string
	Version     string
	Environment string
	LogLevel    string
	// JSONLogs switches the log handler from text to JSON.
	JSONLogs bool
	// Output defaults to os.Stdout.
	Output io.Writer

	// OTLPEndpoint is the host:port of an OTLP gRPC collector. Empty keeps
	// spans in process.
	OTLPEndpoint string
	OTLPInsecure bool
	// SampleRate is the fraction of root traces kept. Values <= 0 or > 1 mean 1.
	SampleRate float64
	// SpanExporter replaces the OTLP exporter when set.
	SpanExporter sdktrace.SpanExporter
}

// Observability bundles the telemetry handles passed into modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry

	flush    func(context.Context) error
	shutdown func(context.Context) error
}

// New builds the logger, installs a global tracer provider and creates a metrics
// registry with the Go runtime and process collectors.
func New(cfg Config) (Observability, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return Observability{}, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSONLogs {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.Version),
		attribute.String("deployment.environment", cfg.Environment),
	)
	exporter, err := spanExporter(cfg)
	if err != nil {
		return Observability{}, err
	}
	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate(cfg.SampleRate)))),
	}
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return Observability{}, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return Observability{}, fmt.Errorf("failed to register process collector: %w", err)
	}

	return Observability{
		Logger:   logger,
		Tracer:   tp.Tracer(cfg.ServiceName),
		Registry: registry,
		flush:    tp.ForceFlush,
		shutdown: tp.Shutdown,
	}, nil
}

func spanExporter(cfg Config) (sdktrace.SpanExporter, error) {
	if cfg.SpanExporter != nil {
		return cfg.SpanExporter, nil
	}
	if cfg.OTLPEndpoint == "" {
		return nil, nil
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	// The gRPC client connects lazily, so an unreachable collector does not fail startup.
	exp, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	return exp, nil
}

func sampleRate(rate float64) float64 {
	if rate <= 0 || rate > 1 {
		return 1
	}
	return rate
}

// NewNoop returns telemetry that discards everything. Used by tests.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("noop"),
		Registry: prometheus.NewRegistry(),
	}
}

// ForceFlush exports every ended span still queued in the batcher.
func (o Observability) ForceFlush(ctx context.Context) error {
	if o.flush == nil {
		return nil
	}
	return o.flush(ctx)
}

// Shutdown flushes pending spans and stops the tracer provider.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.shutdown == nil {
		return nil
	}
	return o.shutdown(ctx)
}

// ParseLevel maps a config string to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
