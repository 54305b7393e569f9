package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SteveHoareau18/timetravelagency/internal/booking"
	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/internal/chat"
	httpmiddleware "github.com/SteveHoareau18/timetravelagency/internal/http/middleware"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	CatalogHandler     *catalog.Handler
	BookingHandler     *booking.Handler
	ChatHandler        *chat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// AdvisorMode is reported by /health ("remote" or "rules").
	AdvisorMode string

	// ChatLimiter throttles the chat surface per client IP. Nil disables it.
	ChatLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthHandler(cfg.AdvisorMode))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.CatalogHandler != nil {
		r.Group(func(public chi.Router) {
			public.Get("/destinations", cfg.CatalogHandler.ListDestinations)
			public.Get("/destinations/{destinationID}", cfg.CatalogHandler.GetDestination)
			public.Get("/extras", cfg.CatalogHandler.ListExtras)
			public.Get("/faq", cfg.CatalogHandler.ListFAQ)
		})
	}
	if cfg.BookingHandler != nil {
		r.Mount("/bookings", cfg.BookingHandler.Routes())
	}
	if cfg.ChatHandler != nil {
		r.Route("/chat", func(c chi.Router) {
			if cfg.ChatLimiter != nil {
				c.Use(httpmiddleware.RateLimit(cfg.ChatLimiter, cfg.Logger))
			}
			c.Mount("/", cfg.ChatHandler.Routes())
		})
	}

	return r
}

func healthHandler(advisorMode string) http.HandlerFunc {
	if advisorMode == "" {
		advisorMode = "rules"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"advisor": advisorMode,
		})
	}
}
