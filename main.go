package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakhrymubarak/cropcast/internal/config"
	"github.com/fakhrymubarak/cropcast/internal/handler"
	"github.com/fakhrymubarak/cropcast/internal/middleware"
	"github.com/fakhrymubarak/cropcast/internal/redis"
	"github.com/fakhrymubarak/cropcast/internal/repository"
	"github.com/fakhrymubarak/cropcast/internal/service"
)

// newServer wires the lookup stack onto an http.Server.
func newServer(limiter *middleware.RateLimiter) *http.Server {
	surfaces := repository.NewSurfaceRepository()
	lookupService := service.NewLookupService(surfaces)

	mux := http.NewServeMux()
	handler.NewLookupHandler(lookupService, surfaces).RegisterRoutes(mux, limiter.Middleware)

	return &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           mux,
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout"),
		ReadTimeout:       config.GetServerTimeout("read_timeout"),
		WriteTimeout:      config.GetServerTimeout("write_timeout"),
		IdleTimeout:       config.GetServerTimeout("idle_timeout"),
	}
}

func main() {
	log := config.GetLogger()
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redis.Ping(ctx); err != nil {
		log.Fatalw("Display surface store unreachable", "addr", config.GetRedisAddr(), "error", err)
	}

	limiter := middleware.NewRateLimiter(middleware.LimitsFromConfig())
	limiter.StartCleanup(ctx, time.Minute)

	srv := newServer(limiter)

	go func() {
		log.Infow("Crop forecast server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown", "error", err)
	}
	if err := redis.GetClient().Close(); err != nil {
		log.Warnw("Closing redis client", "error", err)
	}
	log.Info("Server stopped")
}
