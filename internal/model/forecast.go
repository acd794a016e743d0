package model

import "time"

// DailyForecast is one day of a forecast.
type DailyForecast struct {
	Date            time.Time `json:"date"`
	MaxTempC        float64   `json:"max_temp_c"`
	MinTempC        float64   `json:"min_temp_c"`
	WeatherCode     int       `json:"weather_code"`
	PrecipitationMM float64   `json:"precipitation_mm"`
}
