package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/indexsync/indexsync/internal/mocks"
)

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(context.Background(),
		WithServiceName("indexsync-test"),
		WithSamplingRatio(1),
		WithSpanExporter(exporter),
	)
	require.NoError(t, err)

	spanRecorder := tracetest.NewSpanRecorder()
	tp.RegisterSpanProcessor(spanRecorder)

	_, span := tp.Tracer("").Start(context.Background(), "drain")
	TraceError(span, errors.New("bulk rejected"))
	span.End()

	spans := spanRecorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "drain", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)

	require.NoError(t, tp.Close(context.Background()))
	// closing twice is a no-op
	require.NoError(t, tp.Close(context.Background()))
}

func TestNewTracerProviderExportsToCollector(t *testing.T) {
	collector := mocks.NewMockCollector(t)

	tp, err := NewTracerProvider(context.Background(),
		WithOTLPEndpoint(collector.Addr()),
		WithSamplingRatio(1),
	)
	require.NoError(t, err)

	_, span := tp.Tracer("indexsync").Start(context.Background(), "recovery.Recover")
	span.End()

	// Close flushes the batched spans
	require.NoError(t, tp.Close(context.Background()))

	require.Equal(t, 1, collector.ExportCount())
	require.Equal(t, []string{"recovery.Recover"}, collector.SpanNames())
}

func TestNoop(t *testing.T) {
	tp := Noop()
	_, span := tp.Tracer("").Start(context.Background(), "noop")
	span.End()
	require.False(t, span.SpanContext().IsValid())
	require.NoError(t, tp.Close(context.Background()))
}
