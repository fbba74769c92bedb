package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

type stubProvider struct {
	current  int
	forecast int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Current(ctx context.Context, location string) (weather.CurrentConditions, error) {
	s.current++
	return weather.CurrentConditions{Name: location}, nil
}

func (s *stubProvider) Forecast(ctx context.Context, location string) (weather.ForecastTimeline, error) {
	s.forecast++
	return weather.ForecastTimeline{{Timestamp: "2024-01-01 00:00:00"}}, nil
}

func TestRateLimitedProviderForwards(t *testing.T) {
	stub := &stubProvider{}
	p := NewRateLimitedProvider(stub, 100, 2)

	if p.Name() != "stub" {
		t.Errorf("unexpected name %q", p.Name())
	}
	if c, err := p.Current(context.Background(), "Oslo"); err != nil || c.Name != "Oslo" {
		t.Fatalf("unexpected result %+v, %v", c, err)
	}
	if tl, err := p.Forecast(context.Background(), "Oslo"); err != nil || len(tl) != 1 {
		t.Fatalf("unexpected result %+v, %v", tl, err)
	}
	if stub.current != 1 || stub.forecast != 1 {
		t.Fatalf("expected one call each, got %d/%d", stub.current, stub.forecast)
	}
}

func TestRateLimitedProviderSharesBudget(t *testing.T) {
	stub := &stubProvider{}
	// One token, refilled roughly once an hour.
	p := NewRateLimitedProvider(stub, 1.0/3600, 1)

	if _, err := p.Current(context.Background(), "Oslo"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := p.Forecast(ctx, "Oslo"); err == nil {
		t.Fatal("expected the forecast call to be throttled")
	}
	if stub.forecast != 0 {
		t.Fatal("throttled call must not reach the provider")
	}
}

func TestRateLimitedProviderCanceled(t *testing.T) {
	p := NewRateLimitedProvider(&stubProvider{}, 1, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Current(ctx, "Oslo"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
