package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("geocoding.api_url", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("geocoding.user_agent", "cropcast/1.0")
	viper.SetDefault("geocoding.rate", 1.0)
	viper.SetDefault("geocoding.burst", 1)
	viper.SetDefault("forecast.api_url", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("forecast.days", 15)
	viper.SetDefault("http_client.timeout", "20s")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("surface.expiration", "24h")
}

func initConfig() {
	once.Do(func() {
		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Errorw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// getDuration reads a duration key, returning fallback when it is unset or invalid.
func getDuration(key string, fallback time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString(key)
	if durStr == "" {
		return fallback
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		GetLogger().Warnw("Invalid duration in config, using fallback", "key", key, "value", durStr, "fallback", fallback)
		return fallback
	}
	return dur
}

func GetGeocodeApiUrl() string {
	initConfig()
	return viper.GetString("geocoding.api_url")
}

func GetGeocodeUserAgent() string {
	initConfig()
	return viper.GetString("geocoding.user_agent")
}

// GetGeocodeRateLimit returns the outbound request rate (per second) and burst for the geocoding provider.
// Nominatim's usage policy allows at most one request per second, which is the default.
func GetGeocodeRateLimit() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("geocoding.rate")
	if rate <= 0 {
		rate = 1
	}
	burst = viper.GetInt("geocoding.burst")
	if burst <= 0 {
		burst = 1
	}
	return
}

// GetNominatimEmail returns the operator contact address sent with geocoding requests, if any.
func GetNominatimEmail() string {
	_ = godotenv.Load()
	return os.Getenv("NOMINATIM_EMAIL")
}

func GetForecastApiUrl() string {
	initConfig()
	return viper.GetString("forecast.api_url")
}

// GetForecastDays returns how many daily records a forecast must contain. Defaults to 15.
func GetForecastDays() int {
	initConfig()
	days := viper.GetInt("forecast.days")
	if days <= 0 {
		return 15
	}
	return days
}

func GetHTTPClientTimeout() time.Duration {
	return getDuration("http_client.timeout", 20*time.Second)
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func GetRedisDB() int {
	initConfig()
	return viper.GetInt("redis.db")
}

func GetRedisPassword() string {
	_ = godotenv.Load()
	return os.Getenv("REDIS_PASSWORD")
}

// GetSurfaceExpiration returns how long an untouched display surface is kept. Defaults to 24h.
func GetSurfaceExpiration() time.Duration {
	return getDuration("surface.expiration", 24*time.Hour)
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

func GetServerTimeout(key string) time.Duration {
	return getDuration("server."+key, 15*time.Second)
}

func GetTestRedisMockPort() string {
	initConfig()
	return viper.GetString("test.redis_mock_port")
}

func GetTestServerPort() string {
	initConfig()
	return viper.GetString("test.server_port")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	return getDuration("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetTrustedProxies returns the CIDR prefixes or addresses of reverse proxies whose
// X-Forwarded-For header the rate limiter believes. Empty by default.
func GetTrustedProxies() []string {
	initConfig()
	return viper.GetStringSlice("rate_limiter.trusted_proxies")
}

// GetGlobalRateLimiterConfig returns the per-minute rate and burst for the global rate limiter from config.
func GetGlobalRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.global.rate")
	if rate == 0 {
		rate = 10
	}
	burst = viper.GetInt("rate_limiter.global.burst")
	if burst == 0 {
		burst = 10
	}
	return
}

// GetParamRateLimiterConfig returns the per-minute rate and burst for the param rate limiter from config.
func GetParamRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.param.rate")
	if rate == 0 {
		rate = 2
	}
	burst = viper.GetInt("rate_limiter.param.burst")
	if burst == 0 {
		burst = 2
	}
	return
}
