package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SteveHoareau18/timetravelagency/cmd/mainconfig"
	"github.com/SteveHoareau18/timetravelagency/internal/api/router"
	"github.com/SteveHoareau18/timetravelagency/internal/app/bootstrap"
	"github.com/SteveHoareau18/timetravelagency/internal/booking"
	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/internal/chat"
	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
	httpmiddleware "github.com/SteveHoareau18/timetravelagency/internal/http/middleware"
	"github.com/SteveHoareau18/timetravelagency/internal/notify"
	"github.com/SteveHoareau18/timetravelagency/internal/observability/metrics"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting timetravel agency API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, prometheus.NewRegistry(), logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     app.handler,
		ReadTimeout: 15 * time.Second,
		// Chat replies are paced and may wait on a remote completion.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	app.close(logger)
	logger.Info("server stopped")
}

type application struct {
	handler  http.Handler
	bookings *booking.Service
	closers  []io.Closer
}

func (a *application) close(logger *logging.Logger) {
	if a.bookings != nil {
		a.bookings.Stop()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			logger.Warn("shutdown: close failed", "error", err)
		}
	}
}

// buildApp wires every component from cfg. reg receives the service
// collectors and backs /metrics.
func buildApp(ctx context.Context, cfg *appconfig.Config, reg *prometheus.Registry, logger *logging.Logger) (*application, error) {
	app := &application{}

	awsCfg, err := loadAWSConfig(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		app.closers = append(app.closers, redisClient)
	}
	sessionStore, transcripts := bootstrap.BuildSessionStores(cfg, redisClient)

	advisorMetrics := metrics.NewAdvisorMetrics(reg)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	responder, err := bootstrap.BuildResponder(ctx, mainconfig.AdvisorConfig(cfg), awsCfg, advisorMetrics, logger)
	if err != nil {
		return nil, err
	}

	publisher, closer, err := bootstrap.BuildPublisher(cfg, awsCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	notifier := notify.NewBookingNotifier(bootstrap.BuildEmailSender(cfg, awsCfg, logger), publisher, logger)

	app.bookings = booking.NewService(sessionStore, notifier, booking.ServiceConfig{
		ConfirmationDisplayDelay: cfg.ConfirmationDisplayDelay,
		Metrics:                  bookingMetrics,
		Logger:                   logger,
	})
	chatService := chat.NewService(transcripts, responder, chat.ServiceConfig{
		MinReplyDelay: cfg.ChatMinReplyDelay,
		ReplyJitter:   cfg.ChatReplyJitter,
		Logger:        logger,
	})

	var limiter *httpmiddleware.RateLimiter
	var chatOpts []chat.HandlerOption
	if cfg.RateLimitRPS > 0 {
		limiter = httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		chatOpts = append(chatOpts, chat.WithMessageLimiter(limiter))
	}

	app.handler = router.New(&router.Config{
		Logger:             logger,
		CatalogHandler:     catalog.NewHandler(logger),
		BookingHandler:     booking.NewHandler(app.bookings, logger),
		ChatHandler:        chat.NewHandler(chatService, logger, chatOpts...),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdvisorMode:        responder.Mode(),
		ChatLimiter:        limiter,
	})
	return app, nil
}

// loadAWSConfig only resolves AWS credentials when a component needs them.
func loadAWSConfig(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*aws.Config, error) {
	if !needsAWS(cfg) {
		return nil, nil
	}
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	logger.Info("AWS configuration loaded", "region", awsCfg.Region)
	return &awsCfg, nil
}

func needsAWS(cfg *appconfig.Config) bool {
	return cfg.LLMProvider == "bedrock" || cfg.EmailProvider == "ses" || cfg.ConfirmationQueueURL != ""
}
