package model

// OpenMeteoForecastResponse is the daily forecast payload from Open-Meteo.
// The daily series are index-aligned. Values are pointers because the provider
// sends null for days it has no data for.
type OpenMeteoForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     struct {
		Time             []string   `json:"time"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		WeatherCode      []*int     `json:"weathercode"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}
