package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
	"golang.org/x/time/rate"
)

// GeocodeRepository resolves a free-text location to coordinates.
type GeocodeRepository interface {
	Geocode(ctx context.Context, query string) (*model.GeocodeResult, error)
}

// nominatimRepository implements GeocodeRepository against an OpenStreetMap Nominatim search endpoint.
type nominatimRepository struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	email      string
	limiter    *rate.Limiter
}

// NewGeocodeRepository creates a Nominatim-backed geocoder configured from config.
func NewGeocodeRepository(httpClient ...*http.Client) GeocodeRepository {
	client := defaultHTTPClient()
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	rps, burst := config.GetGeocodeRateLimit()
	return &nominatimRepository{
		httpClient: client,
		baseURL:    config.GetGeocodeApiUrl(),
		userAgent:  config.GetGeocodeUserAgent(),
		email:      config.GetNominatimEmail(),
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Geocode returns the first match for query, or ErrLocationNotFound when there is none.
func (r *nominatimRepository) Geocode(ctx context.Context, query string) (*model.GeocodeResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode rate limit wait: %w", err)
	}

	params := url.Values{
		"city":   {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	if r.email != "" {
		params.Set("email", r.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned status %d", ErrExternalAPI, resp.StatusCode)
	}

	var places []model.NominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("%w: decode geocode response: %v", ErrMalformedResponse, err)
	}
	if len(places) == 0 {
		return nil, ErrLocationNotFound
	}

	first := places[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude %q", ErrMalformedResponse, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude %q", ErrMalformedResponse, first.Lon)
	}

	return &model.GeocodeResult{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: first.DisplayName,
	}, nil
}
