package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"

	"github.com/indexsync/indexsync/internal/build"
)

type TracerOption func(d *CustomTracer)

func WithOTLPEndpoint(endpoint string) TracerOption {
	return func(d *CustomTracer) {
		d.endpoint = endpoint
	}
}

// WithOTLPTLS dials the collector over TLS with the system roots.
func WithOTLPTLS(enabled bool) TracerOption {
	return func(d *CustomTracer) {
		d.tls = enabled
	}
}

func WithServiceName(serviceName string) TracerOption {
	return func(d *CustomTracer) {
		d.serviceName = serviceName
	}
}

func WithSamplingRatio(samplingRatio float64) TracerOption {
	return func(d *CustomTracer) {
		d.samplingRatio = samplingRatio
	}
}

// WithSpanExporter replaces the OTLP exporter.
func WithSpanExporter(exporter sdktrace.SpanExporter) TracerOption {
	return func(d *CustomTracer) {
		d.exporter = exporter
	}
}

type CustomTracer struct {
	endpoint    string
	tls         bool
	serviceName string

	samplingRatio float64

	exporter sdktrace.SpanExporter
}

// NewTracerProvider builds a tracer provider exporting to an OTLP gRPC collector and
// installs it as the global provider. The collector is dialed lazily.
func NewTracerProvider(ctx context.Context, opts ...TracerOption) (TracerProvider, error) {
	tracer := &CustomTracer{
		serviceName: build.ProjectName,
	}

	for _, opt := range opts {
		opt(tracer)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(tracer.serviceName),
			semconv.ServiceVersionKey.String(build.Version),
		))
	if err != nil {
		return nil, fmt.Errorf("build trace resource: %w", err)
	}

	exp := tracer.exporter
	if exp == nil {
		grpcOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(tracer.endpoint)}
		if tracer.tls {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
		} else {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
		}

		exp, err = otlptracegrpc.New(ctx, grpcOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create the otlp exporter: %w", err)
		}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tracer.samplingRatio))),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exp)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	otel.SetTracerProvider(tp)

	return &tracerProvider{tp: tp}, nil
}

func TraceError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
