package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"resonate/internal/config"
	"resonate/internal/server"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// flags are the relay's command line options. Everything else comes from the config file or environment.
type flags struct {
	Config  string `help:"Path to an optional YAML config file." type:"path"`
	EnvFile string `name:"env-file" help:"Optional dotenv file loaded before reading the environment." default:".env"`
}

// main is the entry point for the RelayService.
func main() {
	var f flags
	kong.Parse(&f,
		kong.Name("relayservice"),
		kong.Description("Relays chat requests from the browser to the Gemini API."),
	)

	// A missing .env is fine; the variables may already be exported.
	if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Could not load %s: %v", f.EnvFile, err)
	}

	// Fail before binding the port if the key or anything else is missing.
	cfg, err := config.Load(f.Config)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := server.NewLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	srv := server.New(cfg, logger)

	logger.Info("RelayService starting",
		zap.String("addr", srv.Addr),
		zap.String("model", cfg.Upstream.Model),
		zap.String("allowed_origin", cfg.Server.AllowedOrigin),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Could not start server", zap.Error(err))
	}
}
