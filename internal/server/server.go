package server

import (
	"fmt"
	"net/http"
	"time"

	"resonate/internal/config"
	"resonate/internal/relay"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// preflightMaxAge is how long browsers may cache a CORS preflight, in seconds.
const preflightMaxAge = 3600

// New wires the relay's dependencies together and returns a server ready to ListenAndServe.
func New(cfg *config.Config, log *zap.Logger) *http.Server {
	// One client for the whole process so connections are reused.
	upstream := relay.NewHTTPUpstreamClient(cfg.GenerateContentURL(), cfg.Upstream.Timeout)

	relayService := relay.NewService(upstream, relay.Options{
		SystemInstruction: cfg.Prompt.SystemInstruction,
		ThinkingLevel:     cfg.Prompt.ThinkingLevel,
	}, log)

	relayHandler := relay.NewHandler(relayService)

	return &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: NewRouter(cfg.Server.AllowedOrigin, relayHandler),
		// Upper bound covers the upstream timeout plus reading and writing.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// NewRouter builds the chi router with middleware, CORS and all routes.
func NewRouter(allowedOrigin string, relayHandler *relay.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)    // Log incoming requests.
	r.Use(middleware.Recoverer) // Prevent panics from crashing the server.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"*"},
		MaxAge:         preflightMaxAge,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Resonate Backend Active"))
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RelayService OK"))
	})

	relayHandler.RegisterRoutes(r)
	return r
}

// NewLogger builds the process logger at the given level.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	return zc.Build()
}
