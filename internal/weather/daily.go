package weather

import (
	"time"
)

// ForecastDays is the number of upcoming days shown in the daily view.
const ForecastDays = 5

// DeriveDailyForecast picks the first sample of every distinct calendar day,
// in the order the days first appear, then drops the first day (today) and
// returns at most ForecastDays of the remaining entries.
// An empty timeline yields an empty, non-nil result.
func DeriveDailyForecast(timeline ForecastTimeline) []DailyForecastEntry {
	seen := make(map[string]struct{}, ForecastDays+1)
	days := make([]DailyForecastEntry, 0, ForecastDays+1)

	for _, sample := range timeline {
		date := sample.Date()
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}

		days = append(days, DailyForecastEntry{
			Date:           date,
			Day:            DayNameOf(sample.Timestamp),
			ForecastSample: sample,
		})

		// today plus the next ForecastDays is all we ever return.
		if len(days) > ForecastDays {
			break
		}
	}

	if len(days) <= 1 {
		return []DailyForecastEntry{}
	}
	return days[1:]
}

// DayName returns the short English weekday name ("Mon") of t's calendar date.
func DayName(t time.Time) string {
	return t.Format("Mon")
}

// DayNameOf returns the short weekday name for a provider timestamp
// ("2024-01-01 12:00:00" -> "Mon"). A bare date is accepted as well;
// anything else yields "".
func DayNameOf(ts string) string {
	if t, err := time.ParseInLocation(TimestampLayout, ts, time.UTC); err == nil {
		return DayName(t)
	}
	date := ForecastSample{Timestamp: ts}.Date()
	if t, err := time.ParseInLocation(time.DateOnly, date, time.UTC); err == nil {
		return DayName(t)
	}
	return ""
}
