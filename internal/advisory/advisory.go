package advisory

import "github.com/fakhrymubarak/cropcast/internal/model"

// Summarize returns the mean of the daily maximum temperatures and the total precipitation.
// Both are zero for an empty forecast.
func Summarize(days []model.DailyForecast) (avgTemp, totalRain float64) {
	if len(days) == 0 {
		return 0, 0
	}
	var sumMax float64
	for _, d := range days {
		sumMax += d.MaxTempC
		totalRain += d.PrecipitationMM
	}
	return sumMax / float64(len(days)), totalRain
}

// Advise summarizes the forecast and evaluates DefaultRules against it.
func Advise(days []model.DailyForecast) model.Advisory {
	avgTemp, totalRain := Summarize(days)
	return model.Advisory{
		AvgTempC:        avgTemp,
		TotalRainMM:     totalRain,
		Recommendations: Evaluate(DefaultRules, avgTemp, totalRain),
	}
}
