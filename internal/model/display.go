package model

import "time"

// Theme is the visual mood of the display, derived from today's weather code.
type Theme string

const (
	ThemeSunny   Theme = "sunny"
	ThemeCloudy  Theme = "cloudy"
	ThemeFoggy   Theme = "foggy"
	ThemeRainy   Theme = "rainy"
	ThemeSnowy   Theme = "snowy"
	ThemeStormy  Theme = "stormy"
	ThemeDefault Theme = "default"
)

// DisplayStatus tells a surface which of its regions a Display fills.
type DisplayStatus string

const (
	StatusOK       DisplayStatus = "ok"
	StatusNotFound DisplayStatus = "not_found"
	StatusError    DisplayStatus = "error"
)

// Display is the result of one lookup, ready to be applied to a surface.
// An empty Theme leaves the surface's current theme untouched.
type Display struct {
	Status   DisplayStatus   `json:"status"`
	Message  string          `json:"message,omitempty"`
	Location string          `json:"location,omitempty"`
	Days     []DailyForecast `json:"days,omitempty"`
	Advisory *Advisory       `json:"advisory,omitempty"`
	Theme    Theme           `json:"theme,omitempty"`
}

// SurfaceState is what a display surface currently shows.
type SurfaceState struct {
	Status       DisplayStatus `json:"status,omitempty"`
	Message      string        `json:"message,omitempty"`
	Location     string        `json:"location,omitempty"`
	ForecastHTML string        `json:"forecast_html"`
	AdvisoryHTML string        `json:"advisory_html"`
	Theme        Theme         `json:"theme"`
	UpdatedAt    time.Time     `json:"updated_at,omitempty"`
}
