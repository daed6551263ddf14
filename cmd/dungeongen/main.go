// Package main is the entry point for dungeongen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeongen/internal/game"
	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/server"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONGEN_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	var dump bool
	var serve string
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for level generation (0 picks one at random)")
	flag.StringVar(&cfg.Level, "level", cfg.Level, "ID of the level to show first")
	flag.BoolVar(&dump, "dump", false, "print the level as ASCII and exit")
	flag.StringVar(&serve, "serve", "", "serve maps over HTTP and websockets on this address (e.g. :8080)")
	flag.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces to Honeycomb")
	flag.IntVar(&cfg.LogVerbosity, "v", cfg.LogVerbosity, "log verbosity")
	flag.UintVar(&cfg.MaxTries, "max-tries", cfg.MaxTries, "generation attempts per level")
	flag.Parse()
	if serve == "" && os.Getenv(game.EnvAddr) != "" {
		serve = cfg.Addr
	}

	stdr.SetVerbosity(cfg.LogVerbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("dungeongen")

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Enabled: cfg.Telemetry, Logger: logger})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Generator will run without observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, cfg, dump, serve, logger); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg game.Config, dump bool, serve string, logger logr.Logger) error {
	levels, err := gamedata.LoadLevelRegistry()
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	tileSets, err := gamedata.LoadTileSetRegistry()
	if err != nil {
		return fmt.Errorf("load tile sets: %w", err)
	}
	builder := game.NewBuilder(
		game.WithBuilderLogger(logger.WithName("builder")),
		game.WithMaxTries(cfg.MaxTries),
	)

	switch {
	case dump:
		return dumpLevel(ctx, cfg, levels, builder)
	case serve != "":
		return server.New(levels, tileSets, builder, logger.WithName("server")).ListenAndServe(ctx, serve)
	}

	g, err := game.New(cfg, levels, tileSets, builder, logger.WithName("game"))
	if err != nil {
		return fmt.Errorf("initialize viewer: %w", err)
	}
	return g.Run(ctx)
}

func dumpLevel(ctx context.Context, cfg game.Config, levels *gamedata.LevelRegistry, builder *game.Builder) error {
	spec := levels.At(0)
	if cfg.Level != "" {
		if spec = levels.GetByID(cfg.Level); spec == nil {
			return fmt.Errorf("unknown level %q", cfg.Level)
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	level, err := builder.Build(ctx, spec, seed)
	if errors.Is(err, world.ErrConfiguration) {
		return fmt.Errorf("level %s has unusable parameters: %w", spec.ID, err)
	}
	if err != nil {
		return err
	}

	m := level.Map
	fmt.Printf("%s seed=%d attempts=%d rooms=%d fingerprint=%016x id=%s\n",
		spec.ID, level.Seed, level.Attempts, len(m.Rooms), m.Fingerprint(), m.ID)
	fmt.Print(m.String())
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_DUNGEONGEN_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONGEN_DATASET")
	if dataset == "" {
		dataset = "dungeongen" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
