package instrumentation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	m, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	return m, reader
}

func httpRequestCount(t *testing.T, reader *sdkmetric.ManualReader, method, path, status string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("metric collection failed: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_requests_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected int64 sum data, got %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				gotMethod, _ := dp.Attributes.Value(attribute.Key(attrMethod))
				gotPath, _ := dp.Attributes.Value(attribute.Key(attrPath))
				gotStatus, _ := dp.Attributes.Value(attribute.Key(attrStatus))
				if gotMethod.AsString() == method && gotPath.AsString() == path && gotStatus.AsString() == status {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestWrapHTTPHandlerRecordsRequests(t *testing.T) {
	m, reader := newTestMetrics(t)

	handler := m.WrapHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 to pass through, got %d", rec.Code)
	}
	if got := httpRequestCount(t, reader, "GET", "/mcp", "404"); got != 1 {
		t.Errorf("expected http_requests_total == 1 for the request, got %d", got)
	}
}

func TestWrapHTTPHandlerDefaultStatus(t *testing.T) {
	m, reader := newTestMetrics(t)

	// Handlers that never call WriteHeader respond with 200.
	handler := m.WrapHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	if got := httpRequestCount(t, reader, "POST", "/mcp", "200"); got != 1 {
		t.Errorf("expected http_requests_total == 1 for the request, got %d", got)
	}
}

func TestWrapHTTPHandlerNoOp(t *testing.T) {
	m := &Metrics{}

	handler := m.WrapHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
