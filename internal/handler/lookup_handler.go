package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/model"
	"github.com/fakhrymubarak/cropcast/internal/render"
	"github.com/fakhrymubarak/cropcast/internal/service"
	"github.com/fakhrymubarak/cropcast/internal/weathercode"
	"github.com/google/uuid"
)

const surfaceCookie = "surface"

// SurfaceReader reads back what a display surface currently shows.
type SurfaceReader interface {
	Current(ctx context.Context, id string) (*model.SurfaceState, error)
}

type LookupHandler struct {
	LookupService service.LookupServiceInterface
	Surfaces      SurfaceReader
}

func NewLookupHandler(svc service.LookupServiceInterface, surfaces SurfaceReader) *LookupHandler {
	return &LookupHandler{
		LookupService: svc,
		Surfaces:      surfaces,
	}
}

// RegisterRoutes mounts the page, the JSON endpoints and the stylesheet on mux.
// The middlewares wrap every route except the stylesheet, outermost first.
func (h *LookupHandler) RegisterRoutes(mux *http.ServeMux, middlewares ...func(http.Handler) http.Handler) {
	wrap := func(next http.HandlerFunc) http.Handler {
		var handler http.Handler = next
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
	mux.Handle("/", wrap(h.HandleIndex))
	mux.Handle("/forecast", wrap(h.HandleForecast))
	mux.Handle("/surface", wrap(h.HandleSurface))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(render.StaticFS())))
}

type dayJSON struct {
	Date        string  `json:"date"`
	Label       string  `json:"label"`
	MaxTempC    float64 `json:"max_temp_c"`
	MinTempC    float64 `json:"min_temp_c"`
	RainMM      float64 `json:"precipitation_mm"`
	WeatherCode int     `json:"weather_code"`
	Description string  `json:"description"`
}

type forecastJSON struct {
	Surface  string          `json:"surface"`
	Location string          `json:"location"`
	Theme    model.Theme     `json:"theme"`
	Days     []dayJSON       `json:"days"`
	Advisory *model.Advisory `json:"advisory"`
}

func toForecastJSON(surfaceID string, d *model.Display) forecastJSON {
	days := make([]dayJSON, 0, len(d.Days))
	for _, day := range d.Days {
		days = append(days, dayJSON{
			Date:        day.Date.Format(time.DateOnly),
			Label:       render.FormatDate(day.Date),
			MaxTempC:    day.MaxTempC,
			MinTempC:    day.MinTempC,
			RainMM:      day.PrecipitationMM,
			WeatherCode: day.WeatherCode,
			Description: weathercode.Describe(day.WeatherCode),
		})
	}
	return forecastJSON{
		Surface:  surfaceID,
		Location: d.Location,
		Theme:    d.Theme,
		Days:     days,
		Advisory: d.Advisory,
	}
}

func (h *LookupHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func (h *LookupHandler) rejectNonGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return false
	}
	w.Header().Set("Allow", http.MethodGet)
	h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.ErrorResponse("Method not allowed"))
	return true
}

// HandleForecast runs a lookup and returns the forecast and advisory as JSON.
func (h *LookupHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if h.rejectNonGet(w, r) {
		return
	}

	surfaceID := r.URL.Query().Get("surface")
	if surfaceID == "" {
		surfaceID = uuid.NewString()
	}

	display, err := h.LookupService.Lookup(r.Context(), surfaceID, r.URL.Query().Get("location"))
	switch {
	case errors.Is(err, service.ErrEmptyLocation):
		h.writeJSONResponse(w, http.StatusBadRequest, model.ErrorResponse(service.MsgEmptyLocation))
	case errors.Is(err, service.ErrLookupFailed):
		h.writeJSONResponse(w, http.StatusBadGateway, model.ErrorResponse(service.MsgFailure))
	case err != nil:
		h.writeJSONResponse(w, http.StatusInternalServerError, model.ErrorResponse("Failed to update display surface"))
	case display.Status == model.StatusNotFound:
		h.writeJSONResponse(w, http.StatusNotFound, model.ErrorResponse(service.MsgNotFound))
	default:
		h.writeJSONResponse(w, http.StatusOK, model.SuccessResponse(toForecastJSON(surfaceID, display)))
	}
}

// HandleSurface returns the current state of a display surface.
func (h *LookupHandler) HandleSurface(w http.ResponseWriter, r *http.Request) {
	if h.rejectNonGet(w, r) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeJSONResponse(w, http.StatusBadRequest, model.ErrorResponse("Missing 'id' query parameter"))
		return
	}

	state, err := h.Surfaces.Current(r.Context(), id)
	if err != nil {
		config.GetLogger().Errorw("Could not read display surface", "surface", id, "error", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, model.ErrorResponse("Failed to read display surface"))
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.SuccessResponse(state))
}

// HandleIndex serves the interactive page. Submitting the form runs a lookup against
// the caller's surface and redirects back to the page, which shows the surface.
func (h *LookupHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	surfaceID := surfaceFromCookie(w, r)
	page := render.PageData{}

	if r.URL.Query().Has("location") {
		page.Query = r.URL.Query().Get("location")
		_, err := h.LookupService.Lookup(r.Context(), surfaceID, page.Query)
		if errors.Is(err, service.ErrEmptyLocation) {
			page.Alert = service.MsgEmptyLocation
		} else {
			// The lookup outcome, failures included, is already on the surface.
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	state, err := h.Surfaces.Current(r.Context(), surfaceID)
	if err != nil {
		config.GetLogger().Errorw("Could not read display surface", "surface", surfaceID, "error", err)
		state = &model.SurfaceState{
			ForecastHTML: "<p>" + service.MsgFailure + "</p>",
			Theme:        model.ThemeDefault,
		}
	}
	page.Surface = *state

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WritePage(w, page); err != nil {
		config.GetLogger().Errorw("could not render page", "error", err)
	}
}

// surfaceFromCookie returns the caller's surface id, issuing a new one when absent.
func surfaceFromCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(surfaceCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     surfaceCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(config.GetSurfaceExpiration().Seconds()),
	})
	return id
}
