package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
)

// dailySeries are the Open-Meteo daily variables requested, in order.
var dailySeries = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"weathercode",
	"precipitation_sum",
}

// ForecastRepository retrieves a daily forecast for a coordinate.
type ForecastRepository interface {
	GetForecast(ctx context.Context, lat, lon float64) ([]model.DailyForecast, error)
}

// openMeteoRepository implements ForecastRepository against the Open-Meteo forecast API.
type openMeteoRepository struct {
	httpClient *http.Client
	baseURL    string
	days       int
}

// NewForecastRepository creates an Open-Meteo forecast repository configured from config.
func NewForecastRepository(httpClient ...*http.Client) ForecastRepository {
	client := defaultHTTPClient()
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &openMeteoRepository{
		httpClient: client,
		baseURL:    config.GetForecastApiUrl(),
		days:       config.GetForecastDays(),
	}
}

// GetForecast returns exactly r.days daily records in chronological order.
// Timezone resolution is left to the provider.
func (r *openMeteoRepository) GetForecast(ctx context.Context, lat, lon float64) ([]model.DailyForecast, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"daily":         {strings.Join(dailySeries, ",")},
		"forecast_days": {strconv.Itoa(r.days)},
		"timezone":      {"auto"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: forecast provider returned status %d", ErrExternalAPI, resp.StatusCode)
	}

	var data model.OpenMeteoForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode forecast response: %v", ErrMalformedResponse, err)
	}

	return zipDaily(data, r.days)
}

// zipDaily turns the provider's parallel daily series into one record per day.
func zipDaily(data model.OpenMeteoForecastResponse, want int) ([]model.DailyForecast, error) {
	d := data.Daily
	n := len(d.Time)
	if n != want {
		return nil, fmt.Errorf("%w: expected %d days, got %d", ErrMalformedResponse, want, n)
	}
	if len(d.TemperatureMax) != n || len(d.TemperatureMin) != n || len(d.WeatherCode) != n || len(d.PrecipitationSum) != n {
		return nil, fmt.Errorf("%w: daily series are not aligned (time=%d max=%d min=%d code=%d rain=%d)",
			ErrMalformedResponse, n, len(d.TemperatureMax), len(d.TemperatureMin), len(d.WeatherCode), len(d.PrecipitationSum))
	}

	days := make([]model.DailyForecast, n)
	for i := range days {
		date, err := time.Parse(time.DateOnly, d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", ErrMalformedResponse, d.Time[i])
		}
		maxTemp, minTemp, code, rain := d.TemperatureMax[i], d.TemperatureMin[i], d.WeatherCode[i], d.PrecipitationSum[i]
		if maxTemp == nil || minTemp == nil || code == nil || rain == nil {
			return nil, fmt.Errorf("%w: missing value on %s", ErrMalformedResponse, d.Time[i])
		}
		days[i] = model.DailyForecast{
			Date:            date,
			MaxTempC:        *maxTemp,
			MinTempC:        *minTemp,
			WeatherCode:     *code,
			PrecipitationMM: *rain,
		}
	}
	return days, nil
}
