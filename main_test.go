package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func TestNewServer(t *testing.T) {
	srv := newServer(middleware.NewRateLimiter(middleware.LimitsFromConfig()))

	assert.Equal(t, ":"+config.GetServerPort(), srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
	assert.Equal(t, 60*time.Second, srv.IdleTimeout)
	assert.NotNil(t, srv.Handler)
}

func TestServerRoutes(t *testing.T) {
	srv := newServer(middleware.NewRateLimiter(middleware.LimitsFromConfig()))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"Stylesheet", "/static/style.css", http.StatusOK},
		{"Empty lookup", "/forecast?location=", http.StatusBadRequest},
		{"Surface without id", "/surface", http.StatusBadRequest},
		{"Unknown path", "/weather", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func BenchmarkServerStartup(b *testing.B) {
	limiter := middleware.NewRateLimiter(middleware.LimitsFromConfig())
	for i := 0; i < b.N; i++ {
		_ = newServer(limiter)
	}
}
