package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetNominatimEmail(t *testing.T) {
	// Test with the environment variable set
	expected := "ops@example.com"
	os.Setenv("NOMINATIM_EMAIL", expected)
	defer os.Unsetenv("NOMINATIM_EMAIL")

	result := GetNominatimEmail()
	if result != expected {
		t.Errorf("Expected email %s, got %s", expected, result)
	}

	// Test with environment variable not set
	os.Unsetenv("NOMINATIM_EMAIL")
	result = GetNominatimEmail()
	if result != "" {
		t.Errorf("Expected empty string, got %s", result)
	}
}

func TestGetRedisAddr(t *testing.T) {
	// Environment overrides the config file
	expectedAddr := "redis.internal:6380"
	os.Setenv("REDIS_ADDR", expectedAddr)
	defer os.Unsetenv("REDIS_ADDR")

	result := GetRedisAddr()
	if result != expectedAddr {
		t.Errorf("Expected Redis addr %s, got %s", expectedAddr, result)
	}

	// Test with environment variable not set (should return config value)
	os.Unsetenv("REDIS_ADDR")
	result = GetRedisAddr()
	if result != "localhost:6379" {
		t.Errorf("Expected default Redis addr localhost:6379, got %s", result)
	}
}

func TestGetProviderUrls(t *testing.T) {
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", GetGeocodeApiUrl())
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", GetForecastApiUrl())
	assert.NotEmpty(t, GetGeocodeUserAgent())
}

func TestGetForecastDays(t *testing.T) {
	assert.Equal(t, 15, GetForecastDays())
}

func TestGetGeocodeRateLimit_TestOverride(t *testing.T) {
	rate, burst := GetGeocodeRateLimit()
	assert.Equal(t, 100.0, rate)
	assert.Equal(t, 100, burst)
}

func TestGetServerPort(t *testing.T) {
	want := "8080"
	got := GetServerPort()
	if got != want {
		t.Errorf("Expected server port %s, got %s", want, got)
	}
}

func TestGetSurfaceExpiration(t *testing.T) {
	assert.Equal(t, 24*time.Hour, GetSurfaceExpiration())
}

func TestGetServerTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, GetServerTimeout("read_header_timeout"))
	assert.Equal(t, 30*time.Second, GetServerTimeout("write_timeout"))
	// Unknown keys fall back
	assert.Equal(t, 15*time.Second, GetServerTimeout("does_not_exist"))
}

func TestGetHTTPClientTimeout(t *testing.T) {
	assert.Equal(t, 20*time.Second, GetHTTPClientTimeout())
}

func TestGetRateLimiterConfig(t *testing.T) {
	rate, burst := GetGlobalRateLimiterConfig()
	assert.Equal(t, 10.0, rate)
	assert.Equal(t, 10, burst)

	rate, burst = GetParamRateLimiterConfig()
	assert.Equal(t, 2.0, rate)
	assert.Equal(t, 2, burst)

	assert.Equal(t, 3*time.Minute, GetRateLimiterCleanupTimeout())
	assert.Empty(t, GetTrustedProxies())
}

func TestGetTestRedisMockPort(t *testing.T) {
	want := ":16379"
	got := GetTestRedisMockPort()
	if got != want {
		t.Errorf("Expected test redis mock port %s, got %s", want, got)
	}
}

func TestGetTestServerPort(t *testing.T) {
	want := ":8080"
	got := GetTestServerPort()
	if got != want {
		t.Errorf("Expected test server port %s, got %s", want, got)
	}
}

func TestReloadConfigForTest(t *testing.T) {
	// Should not panic or error
	ReloadConfigForTest()
	assert.Equal(t, 15, GetForecastDays())
}

func TestGetProjectRoot(t *testing.T) {
	root, err := getProjectRoot()
	assert.NoError(t, err)
	_, statErr := os.Stat(root + "/go.mod")
	assert.NoError(t, statErr)
}

func TestGetLogger_Singleton(t *testing.T) {
	assert.NotNil(t, GetLogger())
	assert.Same(t, GetLogger(), GetLogger())
}
