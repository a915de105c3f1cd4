// Package observability bundles the logger, tracer and metrics registry every module receives.
package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const namespace = "scorebook"

type Config struct {
	ServiceName     string
	Environment     string
	Version         string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceSampleRate float64
	LogLevel        slog.Level
	Output          io.Writer
}

// Provider owns process-wide sinks.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	shutdown       func(context.Context) error
}

// Registry holds the per-module instruments.
type Registry struct {
	Tracer            trace.Tracer
	Prometheus        *prometheus.Registry
	LeagueMetrics     metrics.OperationMetrics
	TournamentMetrics metrics.OperationMetrics
	QueueMetrics      metrics.OperationMetrics
}

type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer provider and Prometheus registry. Tracing is exported over
// OTLP/gRPC only when an endpoint is configured.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "scorebook"
	}
	logger := newLogger(cfg)

	var (
		tp       trace.TracerProvider = noop.NewTracerProvider()
		shutdown                      = func(context.Context) error { return nil }
	)
	if cfg.OTLPEndpoint != "" {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return Observability{}, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		rate := cfg.TraceSampleRate
		if rate <= 0 {
			rate = 1
		}
		sdkProvider := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", cfg.ServiceName),
				attribute.String("service.version", cfg.Version),
				attribute.String("deployment.environment", cfg.Environment),
			)),
		)
		otel.SetTracerProvider(sdkProvider)
		tp = sdkProvider
		shutdown = sdkProvider.Shutdown
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	leagueMetrics, err := metrics.NewPrometheus(reg, namespace, "league")
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register league metrics: %w", err)
	}
	tournamentMetrics, err := metrics.NewPrometheus(reg, namespace, "tournament")
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register tournament metrics: %w", err)
	}
	queueMetrics, err := metrics.NewPrometheus(reg, namespace, "queue")
	if err != nil {
		return Observability{}, fmt.Errorf("failed to register queue metrics: %w", err)
	}

	logger.InfoContext(ctx, "Observability initialized",
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
		"tracing", cfg.OTLPEndpoint != "",
	)

	return Observability{
		Provider: &Provider{
			Logger:         logger,
			TracerProvider: tp,
			shutdown:       shutdown,
		},
		Registry: &Registry{
			Tracer:            tp.Tracer(cfg.ServiceName),
			Prometheus:        reg,
			LeagueMetrics:     leagueMetrics,
			TournamentMetrics: tournamentMetrics,
			QueueMetrics:      queueMetrics,
		},
	}, nil
}

// NewNoop returns a bundle that discards logs, traces and metrics.
func NewNoop() Observability {
	return Observability{
		Provider: &Provider{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			TracerProvider: noop.NewTracerProvider(),
			shutdown:       func(context.Context) error { return nil },
		},
		Registry: &Registry{
			Tracer:            noop.NewTracerProvider().Tracer("test"),
			Prometheus:        prometheus.NewRegistry(),
			LeagueMetrics:     metrics.NewNoop(),
			TournamentMetrics: metrics.NewNoop(),
			QueueMetrics:      metrics.NewNoop(),
		},
	}
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}

func newLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return slog.New(handler).With("service", cfg.ServiceName)
}
