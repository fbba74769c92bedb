package weather

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

// makeTimeline builds perDay 3-hourly samples for days consecutive dates
// starting at start (YYYY-MM-DD), temperatures counting up from 0.
func makeTimeline(t *testing.T, start string, days, perDay int) ForecastTimeline {
	t.Helper()

	base, err := time.Parse(time.DateOnly, start)
	if err != nil {
		t.Fatalf("bad start date: %v", err)
	}

	var tl ForecastTimeline
	n := 0
	for d := 0; d < days; d++ {
		for h := 0; h < perDay; h++ {
			ts := base.AddDate(0, 0, d).Add(time.Duration(h*3) * time.Hour)
			tl = append(tl, ForecastSample{
				Timestamp:   ts.Format(TimestampLayout),
				Time:        ts,
				Temperature: float64(n),
				Description: fmt.Sprintf("sample %d", n),
				Icon:        "01d",
			})
			n++
		}
	}
	return tl
}

func TestDeriveDailyForecastFiveDays(t *testing.T) {
	tl := makeTimeline(t, "2024-01-01", 5, 8)
	if len(tl) != 40 {
		t.Fatalf("expected 40 samples, got %d", len(tl))
	}

	got := DeriveDailyForecast(tl)

	wantDates := []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	if len(got) != len(wantDates) {
		t.Fatalf("expected %d entries, got %d", len(wantDates), len(got))
	}
	for i, d := range got {
		if d.Date != wantDates[i] {
			t.Errorf("entry %d: expected date %s, got %s", i, wantDates[i], d.Date)
		}
		// first sample of each day: index (i+1)*8 in the input
		if want := tl[(i+1)*8]; d.ForecastSample != want {
			t.Errorf("entry %d: expected first sample of the day %+v, got %+v", i, want, d.ForecastSample)
		}
	}
	if got[0].Day != "Tue" {
		t.Errorf("expected 2024-01-02 to be Tue, got %s", got[0].Day)
	}
}

func TestDeriveDailyForecastCapsAtFive(t *testing.T) {
	tl := makeTimeline(t, "2024-03-10", 8, 2)

	got := DeriveDailyForecast(tl)
	if len(got) != ForecastDays {
		t.Fatalf("expected %d entries, got %d", ForecastDays, len(got))
	}
	if got[0].Date != "2024-03-11" || got[4].Date != "2024-03-15" {
		t.Errorf("unexpected range %s..%s", got[0].Date, got[4].Date)
	}
}

func TestDeriveDailyForecastSkipsFirstDay(t *testing.T) {
	// Partial first day starting late in the evening.
	tl := makeTimeline(t, "2024-01-01", 6, 8)[6:]
	first := tl[0].Date()

	for _, d := range DeriveDailyForecast(tl) {
		if d.Date == first {
			t.Fatalf("first calendar day %s must not be returned", first)
		}
	}
}

func TestDeriveDailyForecastSmallInputs(t *testing.T) {
	cases := []struct {
		name string
		tl   ForecastTimeline
		want int
	}{
		{"nil", nil, 0},
		{"empty", ForecastTimeline{}, 0},
		{"single day", makeTimeline(t, "2024-01-01", 1, 8), 0},
		{"two days", makeTimeline(t, "2024-01-01", 2, 8), 1},
		{"six days", makeTimeline(t, "2024-01-01", 6, 1), 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveDailyForecast(tc.tl)
			if got == nil {
				t.Fatal("expected a non-nil result")
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d entries, got %d", tc.want, len(got))
			}
		})
	}
}

func TestDeriveDailyForecastIsPure(t *testing.T) {
	tl := makeTimeline(t, "2024-01-01", 5, 8)
	snapshot := append(ForecastTimeline(nil), tl...)

	a := DeriveDailyForecast(tl)
	b := DeriveDailyForecast(tl)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical output for identical input")
	}
	if !reflect.DeepEqual(tl, snapshot) {
		t.Fatal("input timeline was modified")
	}
}

func TestDayName(t *testing.T) {
	cases := map[string]string{
		"2024-01-01 12:00:00": "Mon",
		"2024-01-06 00:00:00": "Sat",
		"2024-01-07 21:00:00": "Sun",
		"2024-02-29":          "Thu",
		"not a date":          "",
	}
	for in, want := range cases {
		if got := DayNameOf(in); got != want {
			t.Errorf("DayNameOf(%q) = %q, want %q", in, got, want)
		}
	}

	if got := DayName(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)); got != "Mon" {
		t.Errorf("DayName = %q, want Mon", got)
	}
}
