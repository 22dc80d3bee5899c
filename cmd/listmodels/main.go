package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"resonate/internal/catalog"
	"resonate/internal/config"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type flags struct {
	Config       string `help:"Path to an optional YAML config file." type:"path"`
	EnvFile      string `name:"env-file" help:"Optional dotenv file loaded before reading the environment." default:".env"`
	GenerateOnly bool   `name:"generate-only" help:"Only show models that support generateContent."`
}

// main prints the models visible to the configured API key.
func main() {
	var f flags
	kong.Parse(&f,
		kong.Name("listmodels"),
		kong.Description("Lists the Gemini models available to GEMINI_API_KEY."),
	)

	if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Could not load %s: %v", f.EnvFile, err)
	}

	cfg, err := config.Load(f.Config)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := catalog.NewClient(ctx, cfg.Upstream.APIKey, cfg.Upstream.BaseURL, cfg.Upstream.APIVersion)
	if err != nil {
		log.Fatal(err)
	}

	n, err := catalog.Write(ctx, client.Models, os.Stdout, f.GenerateOnly)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "%d models\n", n)
}
