package weather

import (
	"context"
	"errors"
)

// LookupFailedMessage is the only failure text shown to end users.
const LookupFailedMessage = "Could not find weather data for this location"

var (
	// ErrProviderRejected is returned by providers when an endpoint answers
	// with a non-success status (e.g. an unknown location).
	ErrProviderRejected = errors.New("provider rejected request")

	// ErrMalformedResponse is returned by providers when a body does not
	// decode or lacks required fields.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrLookupFailed is the single failure surfaced by Service.FetchForecast.
	// Causes are logged but not distinguished to the caller.
	ErrLookupFailed = errors.New(LookupFailedMessage)
)

// Provider abstracts the weather data source (OpenWeatherMap).
// Both calls are read-only and use metric units.
type Provider interface {
	Name() string
	Current(ctx context.Context, location string) (CurrentConditions, error)
	Forecast(ctx context.Context, location string) (ForecastTimeline, error)
}
