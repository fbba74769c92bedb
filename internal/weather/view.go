package weather

import (
	"math"
	"strings"
)

// DefaultIconBaseURL is the provider's icon asset host.
const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

// IconURL composes the 2x icon URL for an icon identifier. Icons are passed
// through without being fetched or validated.
func IconURL(base, icon string) string {
	if icon == "" {
		return ""
	}
	if base == "" {
		base = DefaultIconBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + icon + "@2x.png"
}

// RoundTemp rounds half up, so 21.5 -> 22 and -2.5 -> -2.
func RoundTemp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// CurrentView is CurrentConditions shaped for display.
type CurrentView struct {
	Name        string    `json:"name"`
	Temperature int       `json:"temperatureC"`
	FeelsLike   int       `json:"feelsLikeC"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeed   float64   `json:"windSpeedMs"`
	Code        string    `json:"code"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	IconURL     string    `json:"iconUrl"`
}

// DayView is one DailyForecastEntry shaped for display.
type DayView struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	Temperature int    `json:"temperatureC"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

// ReportView is what presentation layers render for a successful lookup.
type ReportView struct {
	Query   string      `json:"query"`
	Current CurrentView `json:"current"`
	Daily   []DayView   `json:"daily"`
}

// BuildView shapes a report for display using iconBase for icon URLs.
func BuildView(report *Report, iconBase string) *ReportView {
	if report == nil {
		return nil
	}

	c := report.Conditions
	view := &ReportView{
		Query: report.Query,
		Current: CurrentView{
			Name:        c.Name,
			Temperature: RoundTemp(c.Temperature),
			FeelsLike:   RoundTemp(c.FeelsLike),
			Humidity:    c.Humidity,
			WindSpeed:   c.WindSpeed,
			Code:        c.Code,
			Condition:   ConditionFromCode(c.Code),
			Description: c.Description,
			IconURL:     IconURL(iconBase, c.Icon),
		},
	}

	daily := DeriveDailyForecast(report.Timeline)
	view.Daily = make([]DayView, 0, len(daily))
	for _, d := range daily {
		view.Daily = append(view.Daily, DayView{
			Date:        d.Date,
			Day:         d.Day,
			Temperature: RoundTemp(d.Temperature),
			Description: d.Description,
			IconURL:     IconURL(iconBase, d.Icon),
		})
	}

	return view
}
