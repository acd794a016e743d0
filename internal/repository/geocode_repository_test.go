package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestGeocoder(client *http.Client) *nominatimRepository {
	return &nominatimRepository{
		httpClient: client,
		baseURL:    "https://geo.test/search",
		userAgent:  "cropcast-test",
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

func TestGeocode_Success(t *testing.T) {
	var captured *http.Request
	repo := newTestGeocoder(NewStubClient(func(req *http.Request) *http.Response {
		captured = req
		return JSONResponse(http.StatusOK, `[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, Île-de-France, France"}]`)
	}))

	result, err := repo.Geocode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.InDelta(t, 48.8588897, result.Latitude, 1e-9)
	assert.InDelta(t, 2.3200410, result.Longitude, 1e-9)
	assert.Equal(t, "Paris, Île-de-France, France", result.DisplayName)

	q := captured.URL.Query()
	assert.Equal(t, "Paris", q.Get("city"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "1", q.Get("limit"))
	assert.False(t, q.Has("email"))
	assert.Equal(t, "cropcast-test", captured.Header.Get("User-Agent"))
}

func TestGeocode_EscapesQueryAndSendsEmail(t *testing.T) {
	var rawQuery string
	repo := newTestGeocoder(NewStubClient(func(req *http.Request) *http.Response {
		rawQuery = req.URL.RawQuery
		return JSONResponse(http.StatusOK, `[{"lat":"40.7","lon":"-74.0","display_name":"New York"}]`)
	}))
	repo.email = "ops@example.com"

	_, err := repo.Geocode(context.Background(), "New York&limit=50")
	require.NoError(t, err)
	assert.Contains(t, rawQuery, "city=New+York%26limit%3D50")
	assert.Contains(t, rawQuery, "email=ops%40example.com")
	assert.Contains(t, rawQuery, "limit=1")
}

func TestGeocode_ErrorCases(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Empty result", http.StatusOK, `[]`, ErrLocationNotFound},
		{"Provider error", http.StatusServiceUnavailable, `{"error":"busy"}`, ErrExternalAPI},
		{"Not an array", http.StatusOK, `{"error":"x"}`, ErrMalformedResponse},
		{"Bad latitude", http.StatusOK, `[{"lat":"north","lon":"2.3","display_name":"X"}]`, ErrMalformedResponse},
		{"Bad longitude", http.StatusOK, `[{"lat":"1","lon":"","display_name":"X"}]`, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestGeocoder(NewStubClient(func(req *http.Request) *http.Response {
				return JSONResponse(tt.status, tt.body)
			}))
			result, err := repo.Geocode(context.Background(), "Zzzzznotacity")
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGeocode_TransportError(t *testing.T) {
	repo := newTestGeocoder(&http.Client{Transport: failingTransport{}})
	_, err := repo.Geocode(context.Background(), "Paris")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLocationNotFound))
}

func TestGeocode_RateLimitHonoursContext(t *testing.T) {
	calls := 0
	repo := newTestGeocoder(NewStubClient(func(req *http.Request) *http.Response {
		calls++
		return JSONResponse(http.StatusOK, `[]`)
	}))
	repo.limiter = rate.NewLimiter(rate.Every(1e12), 1)

	_, _ = repo.Geocode(context.Background(), "Paris")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Geocode(ctx, "Paris")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewGeocodeRepository(t *testing.T) {
	repo := NewGeocodeRepository()
	impl, ok := repo.(*nominatimRepository)
	require.True(t, ok)
	assert.NotNil(t, impl.httpClient)
	assert.NotEmpty(t, impl.baseURL)
	assert.NotNil(t, impl.limiter)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}
