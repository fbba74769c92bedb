package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// RateLimitedProvider wraps a weather.Provider with a token bucket shared by
// both endpoints, since the provider meters calls per API key.
type RateLimitedProvider struct {
	provider weather.Provider
	limiter  *rate.Limiter
}

// Ensure RateLimitedProvider implements weather.Provider
var _ weather.Provider = (*RateLimitedProvider)(nil)

// NewRateLimitedProvider creates a rate limited provider.
// rps is the maximum requests per second (may be fractional), burst the bucket size.
func NewRateLimitedProvider(provider weather.Provider, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

// Current waits for the limiter and forwards to the wrapped provider.
func (r *RateLimitedProvider) Current(ctx context.Context, location string) (weather.CurrentConditions, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Current(ctx, location)
}

// Forecast waits for the limiter and forwards to the wrapped provider.
func (r *RateLimitedProvider) Forecast(ctx context.Context, location string) (weather.ForecastTimeline, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Forecast(ctx, location)
}
