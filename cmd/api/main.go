package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/akashkumar442/scheduling-api/internal/config"
	"github.com/akashkumar442/scheduling-api/internal/handler"
	schedulingHandler "github.com/akashkumar442/scheduling-api/internal/handler/scheduling"
	"github.com/akashkumar442/scheduling-api/internal/middleware"
	"github.com/akashkumar442/scheduling-api/internal/repository/memory"
	"github.com/akashkumar442/scheduling-api/internal/repository/schedulefile"
	"github.com/akashkumar442/scheduling-api/internal/router"
	schedulingService "github.com/akashkumar442/scheduling-api/internal/service/scheduling"
	"github.com/akashkumar442/scheduling-api/pkg/logger"
	"github.com/akashkumar442/scheduling-api/pkg/metrics"
	"github.com/akashkumar442/scheduling-api/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	appLog := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	}).WithComponent("api")

	// Register request validation rules
	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Initialize repositories
	scheduleRepo := schedulefile.NewRepository(cfg.Schedule.Path)
	bookingStore := memory.NewBookingStore()

	// Probe the schedule source early so misconfiguration shows up in the
	// logs at startup rather than on the first request.
	if _, err := scheduleRepo.Load(context.Background()); err != nil {
		appLog.Warn("schedule source unavailable, requests will fail until it is restored", "path", cfg.Schedule.Path, "error", err.Error())
	}

	// Initialize services
	schedulingSvc := schedulingService.NewService(scheduleRepo, bookingStore)

	// Initialize metrics
	m := metrics.NewMetrics("scheduling_api", "booking")

	// Initialize handlers
	h := handler.NewHandler(scheduleRepo)
	schedulingH := schedulingHandler.NewHandler(schedulingSvc, m)

	// Setup router
	r := router.NewRouter(schedulingH, h, router.RouterConfig{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig(cfg),
		RequestTimeout:   cfg.Server.RequestTimeout,
	})
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		appLog.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLog.Info("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	return corsCfg
}
