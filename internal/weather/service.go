package weather

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Service looks up current conditions and the forecast for a location.
type Service struct {
	provider Provider
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		now:      time.Now,
	}
}

// FetchForecast requests current conditions and the forecast concurrently and
// waits for both. It returns a Report only when both requests succeed and both
// payloads are well formed; every other case yields ErrLookupFailed.
func (s *Service) FetchForecast(ctx context.Context, location string) (*Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		log.Printf("ERROR: FetchForecast called with a blank location")
		return nil, ErrLookupFailed
	}
	if s.provider == nil {
		log.Printf("ERROR: no weather provider configured")
		return nil, ErrLookupFailed
	}

	log.Printf("DEBUG: FetchForecast called for %q via %s", location, s.provider.Name())

	var (
		wg          sync.WaitGroup
		conditions  CurrentConditions
		timeline    ForecastTimeline
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		conditions, currentErr = s.provider.Current(ctx, location)
	}()
	go func() {
		defer wg.Done()
		timeline, forecastErr = s.provider.Forecast(ctx, location)
	}()
	wg.Wait()

	if currentErr != nil || forecastErr != nil {
		log.Printf("ERROR: lookup for %q failed: current: %v; forecast: %v", location, currentErr, forecastErr)
		return nil, ErrLookupFailed
	}

	report := &Report{
		Query:      location,
		Conditions: conditions,
		Timeline:   timeline,
		FetchedAt:  s.now().UTC(),
	}
	if err := validate.Struct(report); err != nil {
		log.Printf("ERROR: lookup for %q produced an invalid report: %v", location, err)
		return nil, ErrLookupFailed
	}

	return report, nil
}
