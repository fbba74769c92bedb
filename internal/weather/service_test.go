package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeProvider struct {
	conditions  CurrentConditions
	timeline    ForecastTimeline
	currentErr  error
	forecastErr error

	// barrier, when set, blocks each call until both are in flight.
	barrier *sync.WaitGroup

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
}

func (f *fakeProvider) Current(ctx context.Context, location string) (CurrentConditions, error) {
	f.record("current:" + location)
	return f.conditions, f.currentErr
}

func (f *fakeProvider) Forecast(ctx context.Context, location string) (ForecastTimeline, error) {
	f.record("forecast:" + location)
	return f.timeline, f.forecastErr
}

func okProvider(t *testing.T) *fakeProvider {
	return &fakeProvider{
		conditions: CurrentConditions{
			Name:        "London",
			Temperature: 11.4,
			FeelsLike:   9.8,
			Humidity:    81,
			WindSpeed:   4.1,
			Code:        "Clouds",
			Description: "broken clouds",
			Icon:        "04d",
		},
		timeline: makeTimeline(t, "2024-01-01", 5, 8),
	}
}

func TestFetchForecastSuccess(t *testing.T) {
	p := okProvider(t)
	svc := NewService(p)

	report, err := svc.FetchForecast(context.Background(), "  London ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Conditions.Name != "London" {
		t.Errorf("expected London, got %q", report.Conditions.Name)
	}
	if report.Query != "London" {
		t.Errorf("expected trimmed query, got %q", report.Query)
	}
	if len(report.Timeline) != 40 {
		t.Errorf("expected 40 samples, got %d", len(report.Timeline))
	}
	if len(p.calls) != 2 {
		t.Errorf("expected two provider calls, got %v", p.calls)
	}
}

func TestFetchForecastIssuesBothRequestsConcurrently(t *testing.T) {
	p := okProvider(t)
	p.barrier = &sync.WaitGroup{}
	p.barrier.Add(2)

	done := make(chan error, 1)
	go func() {
		_, err := NewService(p).FetchForecast(context.Background(), "London")
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("requests were not in flight at the same time")
	}
}

func TestFetchForecastFailures(t *testing.T) {
	rejected := fmt.Errorf("%w: status 404", ErrProviderRejected)
	malformed := fmt.Errorf("%w: bad json", ErrMalformedResponse)

	cases := []struct {
		name   string
		mutate func(p *fakeProvider)
	}{
		{"current rejected", func(p *fakeProvider) { p.currentErr = rejected }},
		{"forecast rejected", func(p *fakeProvider) { p.forecastErr = rejected }},
		{"current malformed", func(p *fakeProvider) { p.currentErr = malformed }},
		{"forecast malformed", func(p *fakeProvider) { p.forecastErr = malformed }},
		{"both fail", func(p *fakeProvider) { p.currentErr, p.forecastErr = rejected, malformed }},
		{"empty name", func(p *fakeProvider) { p.conditions.Name = "" }},
		{"empty timeline", func(p *fakeProvider) { p.timeline = nil }},
		{"bad timestamp", func(p *fakeProvider) { p.timeline[3].Timestamp = "yesterday" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := okProvider(t)
			tc.mutate(p)

			report, err := NewService(p).FetchForecast(context.Background(), "London")
			if report != nil {
				t.Fatalf("expected no partial report, got %+v", report)
			}
			if err != ErrLookupFailed {
				t.Fatalf("expected ErrLookupFailed, got %v", err)
			}
			if errors.Is(err, ErrProviderRejected) || errors.Is(err, ErrMalformedResponse) {
				t.Fatal("failure causes must not be distinguishable by the caller")
			}
		})
	}
}

func TestFetchForecastBlankLocation(t *testing.T) {
	p := okProvider(t)

	_, err := NewService(p).FetchForecast(context.Background(), "   ")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("expected no provider calls, got %v", p.calls)
	}
}

func TestFetchForecastNoProvider(t *testing.T) {
	_, err := NewService(nil).FetchForecast(context.Background(), "London")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}
