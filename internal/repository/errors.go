package repository

import (
	"errors"
	"net/http"

	"github.com/fakhrymubarak/cropcast/internal/config"
)

// Custom error types
var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrExternalAPI       = errors.New("external API error")
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrInvalidSurfaceID  = errors.New("invalid surface id")
)

// defaultHTTPClient is used by the provider repositories when none is injected.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: config.GetHTTPClientTimeout()}
}
