package weather

import (
	"strings"
	"time"
)

// TimestampLayout is the layout of the provider's dt_txt field.
const TimestampLayout = "2006-01-02 15:04:05"

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// ConditionFromCode maps a provider condition group (weather[0].main) to a Condition.
func ConditionFromCode(code string) Condition {
	switch code {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm", "Squall", "Tornado":
		return ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke", "Dust", "Sand", "Ash":
		return ConditionMist
	default:
		return ConditionUnknown
	}
}

// CurrentConditions is the current weather at the resolved place.
type CurrentConditions struct {
	Name        string  `json:"name" validate:"required"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity" validate:"gte=0,lte=100"`
	WindSpeed   float64 `json:"windSpeed" validate:"gte=0"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// ForecastSample is one 3-hour step of the provider forecast.
type ForecastSample struct {
	Timestamp   string    `json:"timestamp" validate:"required,datetime=2006-01-02 15:04:05"`
	Time        time.Time `json:"time"` // UTC
	Temperature float64   `json:"temperature"`
	Code        string    `json:"code,omitempty"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// Date returns the calendar date portion of the sample timestamp.
func (s ForecastSample) Date() string {
	date, _, _ := strings.Cut(s.Timestamp, " ")
	return date
}

// ForecastTimeline is the chronologically ordered sequence of samples.
// Entries are kept in provider order and never re-sorted.
type ForecastTimeline []ForecastSample

// DailyForecastEntry is the sample chosen to represent one calendar day.
type DailyForecastEntry struct {
	Date string `json:"date"`
	Day  string `json:"day"`
	ForecastSample
}

// Report is the result of one successful lookup. Conditions and Timeline
// always originate from the same query and fetch attempt.
type Report struct {
	Query      string            `json:"query"`
	Conditions CurrentConditions `json:"conditions"`
	Timeline   ForecastTimeline  `json:"timeline" validate:"min=1,dive"`
	FetchedAt  time.Time         `json:"fetchedAt"`
}
