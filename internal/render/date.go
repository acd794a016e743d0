// Package render turns lookup results into the forecast and advisory regions of a display.
package render

import (
	"math"
	"strconv"
	"time"
)

// FormatDate renders a day as a short month abbreviation and day number, e.g. "Mar 5".
func FormatDate(d time.Time) string {
	return d.Format("Jan 2")
}

// FormatDateString parses an ISO calendar day ("2024-03-05") and formats it with FormatDate.
func FormatDateString(day string) (string, error) {
	d, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}

// formatNumber prints a value the way the provider sent it: shortest form, no padding.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatOneDecimal prints a statistic rounded to one decimal place. Exact ties
// round away from zero, so 2.25 prints as "2.3".
func formatOneDecimal(v float64) string {
	scaled := v * 10
	rounded := math.Round(scaled)
	// v*10 can land on a .5 tie the exact product does not reach, e.g. 0.15.
	if math.Abs(scaled-math.Trunc(scaled)) == 0.5 {
		if rest := math.FMA(v, 10, -scaled); rest != 0 && (rest < 0) == (scaled > 0) {
			rounded = math.Trunc(scaled)
		}
	}
	return strconv.FormatFloat(rounded/10, 'f', 1, 64)
}
