package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func printView(out io.Writer, v *weather.ReportView) error {
	cur := v.Current
	fmt.Fprintf(out, "%s\n", cur.Name)
	fmt.Fprintf(out, "  %d°C, %s\n", cur.Temperature, cur.Description)
	fmt.Fprintf(out, "  Feels like: %d°C\n", cur.FeelsLike)
	fmt.Fprintf(out, "  Wind speed: %g m/s\n", cur.WindSpeed)
	fmt.Fprintf(out, "  Humidity:   %g%%\n", cur.Humidity)
	fmt.Fprintf(out, "  Icon:       %s\n\n", cur.IconURL)

	fmt.Fprintf(out, "%d-Day Forecast\n", weather.ForecastDays)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, d := range v.Daily {
		fmt.Fprintf(tw, "  %s\t%s\t%d°C\t%s\n", d.Day, d.Date, d.Temperature, d.Description)
	}
	return tw.Flush()
}
