package model

// Recommendation is a crop or fruit suggestion with its rationale.
type Recommendation struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Advisory holds the aggregate statistics of a forecast and the suggestions derived from them.
// AvgTempC is the mean of the daily maximum temperatures.
type Advisory struct {
	AvgTempC        float64          `json:"avg_temp_c"`
	TotalRainMM     float64          `json:"total_rain_mm"`
	Recommendations []Recommendation `json:"recommendations"`
}
