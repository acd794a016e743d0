package render

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/fakhrymubarak/cropcast/internal/weathercode"
)

// WriteForecastText writes one line per day in input order.
func WriteForecastText(w io.Writer, location string, days []model.DailyForecast) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", location); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range days {
		fmt.Fprintf(tw, "%s\tMax: %s°C\tMin: %s°C\tRain: %s mm\t%s\n",
			FormatDate(d.Date), formatNumber(d.MaxTempC), formatNumber(d.MinTempC),
			formatNumber(d.PrecipitationMM), weathercode.Describe(d.WeatherCode))
	}
	return tw.Flush()
}

// WriteAdvisoryText writes the statistics followed by each recommendation.
func WriteAdvisoryText(w io.Writer, adv model.Advisory) error {
	_, err := fmt.Fprintf(w, "Recommended Crops & Fruits:\nAvg Temp: %s°C\nTotal Rain: %s mm\n----\n",
		formatOneDecimal(adv.AvgTempC), formatOneDecimal(adv.TotalRainMM))
	if err != nil {
		return err
	}
	for _, r := range adv.Recommendations {
		if _, err := fmt.Fprintf(w, "%s\n  %s\n\n", r.Name, r.Reason); err != nil {
			return err
		}
	}
	return nil
}

// TextSurface is a display surface backed by a terminal or any other writer.
// It has a single region, so the surface id is ignored.
type TextSurface struct {
	W io.Writer
}

func (s TextSurface) Apply(_ context.Context, _ string, d *model.Display) error {
	if d.Status != model.StatusOK {
		_, err := fmt.Fprintln(s.W, d.Message)
		return err
	}
	if _, err := fmt.Fprintf(s.W, "[theme: %s]\n", d.Theme); err != nil {
		return err
	}
	if err := WriteForecastText(s.W, d.Location, d.Days); err != nil {
		return err
	}
	fmt.Fprintln(s.W)
	if d.Advisory == nil {
		return nil
	}
	return WriteAdvisoryText(s.W, *d.Advisory)
}
