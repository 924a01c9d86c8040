package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/duelforge/duel-server/internal/catalog"
	"github.com/duelforge/duel-server/internal/config"
	"github.com/duelforge/duel-server/internal/game"
	"github.com/duelforge/duel-server/internal/repository"
	"github.com/duelforge/duel-server/internal/server"
	"github.com/duelforge/duel-server/internal/session"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting duel server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Result persistence is optional; without a database URL the server
	// runs matches without recording outcomes.
	var recorder session.Recorder
	if cfg.Database.URL != "" {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		results := repository.NewResultRepository(db, logger)
		if schemaErr := results.EnsureSchema(ctx); schemaErr != nil {
			logger.Fatal("failed to ensure database schema", zap.Error(schemaErr))
		}
		recorder = results
	} else {
		logger.Warn("no database configured; match results will not be recorded")
	}

	// The card catalog is optional; without one the server trusts
	// submitted deck templates and parses their ability text directly.
	var cards *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cards, err = catalog.LoadFile(cfg.Catalog.Path, logger)
		if err != nil {
			logger.Warn("failed to load card catalog; submitted decks will be taken at face value",
				zap.String("path", cfg.Catalog.Path),
				zap.Error(err),
			)
			cards = nil
		}
	}

	rules := game.Rules{
		StartingHealth: cfg.Game.StartingHealth,
		StartingHand:   cfg.Game.StartingHand,
		MaxHandSize:    cfg.Game.MaxHandSize,
		MaxFieldSize:   cfg.Game.MaxFieldSize,
		MaxMana:        cfg.Game.MaxMana,
		LogSize:        cfg.Game.LogSize,
	}

	srv := server.NewServer(cfg.Server, rules, cards, recorder, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	logger.Info("duel server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}

	logger.Info("duel server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
