package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lowendtheory/dubplate/internal/api"
	"github.com/lowendtheory/dubplate/internal/platforms"
	"github.com/lowendtheory/dubplate/internal/repositories"
	"github.com/lowendtheory/dubplate/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	opts := RunnerOpts{Config: config, Logger: logger}

	clientOpts := []api.Option{
		api.WithTimeout(config.API.Timeout()),
		api.WithRetryPolicy(api.ExponentialPolicy{
			MaxAttempts: config.API.MaxAttempts,
			BaseDelay:   config.API.Backoff(),
			MaxDelay:    config.API.MaxBackoff(),
		}),
		api.WithLogger(logger),
		api.WithMetrics(api.NewMetricsCollector()),
	}

	if db, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warnf("failed to open database, falling back to in-memory state: %v", err)
	} else if err := shared.RunMigrations(db); err != nil {
		logger.Warnf("failed to run migrations, falling back to in-memory state: %v", err)
		db.Close()
	} else {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		opts.DB = db
		opts.Cache = repositories.NewCacheRepository(db)
		clientOpts = append(clientOpts, api.WithTokenStore(repositories.NewTokenRepository(db)))
	}

	client := api.New(config.API.BaseURL, clientOpts...)
	opts.Client = client
	if opts.Cache != nil {
		opts.Cached = api.NewCachedClient(client, opts.Cache, api.WithTTL(config.API.CacheTTL()))
	}

	opts.Verifier = buildVerifier(config, logger)

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "dubplate",
		Usage:    "Browse and vote on community dubstep charts",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// buildVerifier wires up whichever platform integrations have credentials.
func buildVerifier(config *shared.Config, logger *log.Logger) *platforms.Verifier {
	var spotify *platforms.SpotifyService
	var soundcloud *platforms.SoundCloudService
	var youtube *platforms.YouTubeService

	if svc, err := platforms.NewSpotifyService(context.Background(), config.Platforms.Spotify, ""); err == nil {
		spotify = svc
	}
	if svc, err := platforms.NewSoundCloudService(config.Platforms.SoundCloud, ""); err == nil {
		soundcloud = svc
	}
	if svc, err := platforms.NewYouTubeService(config.Platforms.YouTube, ""); err == nil {
		youtube = svc
	}
	return platforms.NewVerifier(logger, spotify, soundcloud, youtube)
}
