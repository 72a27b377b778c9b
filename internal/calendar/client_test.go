package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/oauth2"

	"github.com/lvogt/calnotes/internal/instrumentation"
)

type fakeTokenProvider struct {
	token      *oauth2.Token
	refreshErr error
	refreshes  int
}

func (p *fakeTokenProvider) Token(context.Context) (*oauth2.Token, error) {
	return p.token, nil
}

func (p *fakeTokenProvider) ForceRefresh(context.Context) (*oauth2.Token, error) {
	p.refreshes++
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return p.token, nil
}

func (p *fakeTokenProvider) HasToken() bool { return true }

func newRecordingMetrics(t *testing.T) (*instrumentation.Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	metrics, err := instrumentation.NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	return metrics, reader
}

// tokenRefreshCount reads the oauth_token_refresh_total counter value for
// the given result attribute.
func tokenRefreshCount(t *testing.T, reader *sdkmetric.ManualReader, result string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("metric collection failed: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "oauth_token_refresh_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected int64 sum data, got %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("result")); ok && v.AsString() == result {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func newTestClient(t *testing.T, provider *fakeTokenProvider, metrics *instrumentation.Metrics) *Client {
	t.Helper()

	client, err := NewClient(context.Background(), &oauth2.Config{}, provider, metrics)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestRefreshCredentialsRecordsSuccess(t *testing.T) {
	metrics, reader := newRecordingMetrics(t)
	provider := &fakeTokenProvider{
		token: &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
	}
	client := newTestClient(t, provider, metrics)

	if err := client.refreshCredentials(context.Background()); err != nil {
		t.Fatalf("refreshCredentials failed: %v", err)
	}

	if provider.refreshes != 1 {
		t.Errorf("expected 1 refresh attempt, got %d", provider.refreshes)
	}
	if got := tokenRefreshCount(t, reader, instrumentation.OAuthResultSuccess); got != 1 {
		t.Errorf("expected oauth_token_refresh_total{result=success} == 1, got %d", got)
	}
}

func TestRefreshCredentialsRecordsFailure(t *testing.T) {
	metrics, reader := newRecordingMetrics(t)
	provider := &fakeTokenProvider{
		token:      &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
		refreshErr: errors.New("invalid_grant"),
	}
	client := newTestClient(t, provider, metrics)

	if err := client.refreshCredentials(context.Background()); err == nil {
		t.Fatal("expected refreshCredentials to fail")
	}

	if got := tokenRefreshCount(t, reader, instrumentation.OAuthResultFailure); got != 1 {
		t.Errorf("expected oauth_token_refresh_total{result=failure} == 1, got %d", got)
	}
}

func TestRefreshCredentialsNilMetrics(t *testing.T) {
	provider := &fakeTokenProvider{
		token: &oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)},
	}
	client := newTestClient(t, provider, nil)

	// Must not panic when no recorder was supplied.
	if err := client.refreshCredentials(context.Background()); err != nil {
		t.Fatalf("refreshCredentials failed: %v", err)
	}
}
