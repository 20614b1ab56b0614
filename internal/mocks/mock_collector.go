package mocks

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	otlpcollector "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/grpc"
)

// MockCollector is an OTLP trace collector recording the names of the spans it
// receives.
type MockCollector struct {
	otlpcollector.UnimplementedTraceServiceServer

	mu        sync.Mutex
	exports   int
	spanNames []string

	addr string
}

var _ otlpcollector.TraceServiceServer = (*MockCollector)(nil)

func (c *MockCollector) Export(_ context.Context, req *otlpcollector.ExportTraceServiceRequest) (*otlpcollector.ExportTraceServiceResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.exports++
	for _, rs := range req.GetResourceSpans() {
		for _, ss := range rs.GetScopeSpans() {
			for _, span := range ss.GetSpans() {
				c.spanNames = append(c.spanNames, span.GetName())
			}
		}
	}
	return &otlpcollector.ExportTraceServiceResponse{}, nil
}

// NewMockCollector serves a collector on a random local port until the test ends.
func NewMockCollector(t testing.TB) *MockCollector {
	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)

	collector := &MockCollector{addr: lis.Addr().String()}
	server := grpc.NewServer()
	otlpcollector.RegisterTraceServiceServer(server, collector)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(lis)
	}()
	t.Cleanup(func() {
		server.Stop()
		<-done
	})

	return collector
}

// Addr is the host:port the collector listens on.
func (c *MockCollector) Addr() string {
	return c.addr
}

func (c *MockCollector) ExportCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exports
}

func (c *MockCollector) SpanNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.spanNames...)
}
