package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/cropcast/internal/advisory"
	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/fakhrymubarak/cropcast/internal/repository"
	"github.com/fakhrymubarak/cropcast/internal/weathercode"
)

// User-visible messages.
const (
	MsgEmptyLocation = "Please enter a city name!"
	MsgNotFound      = "City not found!"
	MsgFailure       = "Unable to fetch forecast data."
)

var (
	ErrEmptyLocation = errors.New("empty location")
	ErrLookupFailed  = errors.New("forecast lookup failed")
)

// Surface receives the result of each lookup.
type Surface interface {
	Apply(ctx context.Context, id string, d *model.Display) error
}

// LookupServiceInterface is what the front ends call.
type LookupServiceInterface interface {
	Lookup(ctx context.Context, surfaceID, query string) (*model.Display, error)
}

// LookupService resolves a location, fetches its forecast and applies the outcome to a surface.
type LookupService struct {
	Geocoder   repository.GeocodeRepository
	Forecaster repository.ForecastRepository
	Surface    Surface
}

// NewLookupService wires the provider repositories configured from config to surface.
func NewLookupService(surface Surface) *LookupService {
	return &LookupService{
		Geocoder:   repository.NewGeocodeRepository(),
		Forecaster: repository.NewForecastRepository(),
		Surface:    surface,
	}
}

// Lookup runs one lookup for query on the given surface.
//
// Empty input returns ErrEmptyLocation before any network call and leaves the surface alone.
// An unknown location is not an error: the not-found display is applied and returned.
// Any other failure applies the generic failure display and returns an error wrapping
// ErrLookupFailed.
func (s *LookupService) Lookup(ctx context.Context, surfaceID, query string) (*model.Display, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyLocation
	}
	log := config.GetLogger().With("surface", surfaceID, "location", query)

	display, cause := s.resolve(ctx, query)
	if cause != nil {
		log.Errorw("Forecast lookup failed", "error", cause)
	} else {
		log.Infow("Forecast lookup finished", "status", display.Status)
	}

	if err := s.Surface.Apply(ctx, surfaceID, display); err != nil {
		log.Errorw("Could not update display surface", "error", err)
		if cause == nil {
			return display, fmt.Errorf("apply display: %w", err)
		}
	}

	if cause != nil {
		return display, fmt.Errorf("%w: %w", ErrLookupFailed, cause)
	}
	return display, nil
}

// resolve performs the two sequential provider calls and builds the display.
// The error is the underlying cause for failure displays.
func (s *LookupService) resolve(ctx context.Context, query string) (*model.Display, error) {
	place, err := s.Geocoder.Geocode(ctx, query)
	if errors.Is(err, repository.ErrLocationNotFound) {
		return &model.Display{Status: model.StatusNotFound, Message: MsgNotFound}, nil
	}
	if err != nil {
		return failureDisplay(), fmt.Errorf("geocode: %w", err)
	}

	days, err := s.Forecaster.GetForecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return failureDisplay(), fmt.Errorf("forecast: %w", err)
	}
	if len(days) == 0 {
		return failureDisplay(), fmt.Errorf("forecast: %w", repository.ErrMalformedResponse)
	}

	adv := advisory.Advise(days)
	return &model.Display{
		Status:   model.StatusOK,
		Location: place.DisplayName,
		Days:     days,
		Advisory: &adv,
		Theme:    weathercode.ThemeFor(days[0].WeatherCode),
	}, nil
}

func failureDisplay() *model.Display {
	return &model.Display{Status: model.StatusError, Message: MsgFailure}
}
