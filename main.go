package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"trial-screening/pkg/api"
	"trial-screening/pkg/clients/segment"
	"trial-screening/pkg/config"
	"trial-screening/pkg/logging"
	"trial-screening/pkg/metrics"
	"trial-screening/pkg/middleware"
	"trial-screening/pkg/services"
	"trial-screening/pkg/wizard"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	// Initialize configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	screeningMetrics := metrics.NewScreeningMetrics(reg)

	// Initialize the analytics client; without a write key events only go to the log
	var segmentClient segment.Client
	if cfg.SegmentWriteKey != "" {
		segmentClient = segment.NewClient(cfg.SegmentWriteKey, cfg.SegmentEndpoint)
	} else {
		logger.Warn("SEGMENT_WRITE_KEY not set, analytics events will only be logged")
	}

	sessions := services.NewSessionStore(func(sessionID string) *wizard.Controller {
		var notifier wizard.Notifier = segment.NewLogNotifier(logger)
		if segmentClient != nil {
			notifier = segment.NewNotifier(segmentClient, sessionID)
		}
		return wizard.NewController(notifier,
			wizard.WithLogger(logger.With("session_id", sessionID)),
			wizard.WithMetrics(screeningMetrics),
		)
	}, cfg.SessionTTL)
	stop := make(chan struct{})
	defer close(stop)
	sessions.StartJanitor(time.Minute, stop)

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Initialize handlers
	handlers := api.NewHandlers(api.Destinations{
		Disqualified: cfg.DisqualifiedURL,
		Completed:    cfg.CompletedURL,
	}, logger)

	// Register routes
	api.RegisterRoutes(router, handlers, middleware.Session(sessions, cfg.SessionCookie), reg)

	// Start the server
	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("error starting server", "error", err)
		log.Fatalf("Error starting server: %v", err)
	}
}
