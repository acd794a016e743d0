package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/fakhrymubarak/cropcast/internal/redis"
	"github.com/fakhrymubarak/cropcast/internal/render"
	redisv9 "github.com/redis/go-redis/v9"
)

const surfaceKeyPrefix = "surface:"

// Hash fields of a stored surface.
const (
	fieldStatus    = "status"
	fieldMessage   = "message"
	fieldLocation  = "location"
	fieldForecast  = "forecast_html"
	fieldAdvisory  = "advisory_html"
	fieldTheme     = "theme"
	fieldUpdatedAt = "updated_at"
)

// SurfaceRepository stores what each display surface currently shows.
type SurfaceRepository interface {
	Apply(ctx context.Context, id string, d *model.Display) error
	Current(ctx context.Context, id string) (*model.SurfaceState, error)
}

// surfaceClient is the subset of the Redis client used for surfaces.
type surfaceClient interface {
	TxPipelined(ctx context.Context, fn func(redisv9.Pipeliner) error) ([]redisv9.Cmder, error)
	HGetAll(ctx context.Context, key string) *redisv9.MapStringStringCmd
}

// surfaceRepository implements SurfaceRepository as one Redis hash per surface.
type surfaceRepository struct {
	redisClient surfaceClient
	expiration  time.Duration
}

// NewSurfaceRepository creates a surface repository on the shared Redis client.
func NewSurfaceRepository(client ...*redisv9.Client) SurfaceRepository {
	var c surfaceClient = redis.GetClient()
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	}
	return &surfaceRepository{
		redisClient: c,
		expiration:  config.GetSurfaceExpiration(),
	}
}

func surfaceKey(id string) string {
	return surfaceKeyPrefix + id
}

// Apply renders both regions of d and replaces them on the surface in one transaction.
// The theme field is only overwritten when d carries a theme.
func (r *surfaceRepository) Apply(ctx context.Context, id string, d *model.Display) error {
	if id == "" {
		return ErrInvalidSurfaceID
	}
	forecastHTML, err := render.ForecastRegion(d)
	if err != nil {
		return fmt.Errorf("render forecast region: %w", err)
	}
	advisoryHTML, err := render.AdvisoryRegion(d)
	if err != nil {
		return fmt.Errorf("render advisory region: %w", err)
	}

	fields := map[string]any{
		fieldStatus:    string(d.Status),
		fieldMessage:   d.Message,
		fieldLocation:  d.Location,
		fieldForecast:  string(forecastHTML),
		fieldAdvisory:  string(advisoryHTML),
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if d.Theme != "" {
		fields[fieldTheme] = string(d.Theme)
	}

	key := surfaceKey(id)
	_, err = r.redisClient.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, r.expiration)
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply surface %s: %w", id, err)
	}
	return nil
}

// Current returns the surface state. An unknown surface is blank with the default theme.
func (r *surfaceRepository) Current(ctx context.Context, id string) (*model.SurfaceState, error) {
	if id == "" {
		return nil, ErrInvalidSurfaceID
	}
	vals, err := r.redisClient.HGetAll(ctx, surfaceKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("read surface %s: %w", id, err)
	}

	state := &model.SurfaceState{
		Status:       model.DisplayStatus(vals[fieldStatus]),
		Message:      vals[fieldMessage],
		Location:     vals[fieldLocation],
		ForecastHTML: vals[fieldForecast],
		AdvisoryHTML: vals[fieldAdvisory],
		Theme:        model.Theme(vals[fieldTheme]),
	}
	if state.Theme == "" {
		state.Theme = model.ThemeDefault
	}
	if ts, ok := vals[fieldUpdatedAt]; ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			state.UpdatedAt = t
		}
	}
	return state, nil
}
