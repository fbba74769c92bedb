package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

var validate = validator.New()

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// OpenWeatherOption customizes an OpenWeatherProvider.
type OpenWeatherOption func(*OpenWeatherProvider)

// WithBaseURL overrides the API root (used by tests and proxies).
func WithBaseURL(baseURL string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithBackoff overrides the retry policy. The default is a single attempt.
func WithBackoff(b BackoffConfig) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		p.httpCfg.Backoff = b
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...OpenWeatherOption) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherBaseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      0,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("openweather"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}

// owmCurrentCondition is stricter than owmCondition: the condition group
// drives the current conditions view.
type owmCurrentCondition struct {
	Main        string `json:"main" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}

type owmCurrentPayload struct {
	Name string `json:"name" validate:"required"`
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like" validate:"required"`
		Humidity  *float64 `json:"humidity" validate:"required"`
	} `json:"main" validate:"required"`
	Weather []owmCurrentCondition `json:"weather" validate:"required,min=1,dive"`
	Wind    *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
}

type owmForecastPayload struct {
	List []struct {
		DtTxt string `json:"dt_txt" validate:"required,datetime=2006-01-02 15:04:05"`
		Main  *struct {
			Temp *float64 `json:"temp" validate:"required"`
		} `json:"main" validate:"required"`
		Weather []owmCondition `json:"weather" validate:"required,min=1,dive"`
	} `json:"list" validate:"required,min=1,dive"`
}

// Current fetches current conditions from the /weather endpoint.
func (p *OpenWeatherProvider) Current(ctx context.Context, location string) (weather.CurrentConditions, error) {
	var payload owmCurrentPayload
	if err := p.get(ctx, "weather", location, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	cond := payload.Weather[0]
	return weather.CurrentConditions{
		Name:        payload.Name,
		Temperature: *payload.Main.Temp,
		FeelsLike:   *payload.Main.FeelsLike,
		Humidity:    *payload.Main.Humidity,
		WindSpeed:   *payload.Wind.Speed,
		Code:        cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
	}, nil
}

// Forecast fetches the 5-day/3-hour forecast from the /forecast endpoint.
// Samples keep the provider's order.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, location string) (weather.ForecastTimeline, error) {
	var payload owmForecastPayload
	if err := p.get(ctx, "forecast", location, &payload); err != nil {
		return nil, err
	}

	timeline := make(weather.ForecastTimeline, 0, len(payload.List))
	for _, item := range payload.List {
		// dt_txt is UTC; the layout was checked by validation.
		ts, err := time.ParseInLocation(weather.TimestampLayout, item.DtTxt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: dt_txt %q: %v", weather.ErrMalformedResponse, item.DtTxt, err)
		}
		cond := item.Weather[0]
		timeline = append(timeline, weather.ForecastSample{
			Timestamp:   item.DtTxt,
			Time:        ts,
			Temperature: *item.Main.Temp,
			Code:        cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
		})
	}

	return timeline, nil
}

// get performs GET {baseURL}/{endpoint}?q=..&appid=..&units=metric and decodes
// and validates the JSON body into out.
func (p *OpenWeatherProvider) get(ctx context.Context, endpoint, location string, out interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", location)
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("openweather %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweather %s: %w: %v", endpoint, weather.ErrMalformedResponse, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("openweather %s: %w: %v", endpoint, weather.ErrMalformedResponse, err)
	}

	return nil
}
