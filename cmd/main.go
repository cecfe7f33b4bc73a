package main

import (
	"context"
	"os"

	"github.com/desertthunder/ytcull/internal/services"
	"github.com/desertthunder/ytcull/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	var youtubeService services.Service

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	if config.Credentials.YouTube.ClientID != "" && config.Credentials.YouTube.ClientSecret != "" {
		if svc, err := services.NewYouTubeService(config.Credentials.YouTube.Map()); err == nil {
			if token := config.Credentials.YouTube.Token(); token != nil {
				if err := svc.OAuthenticate(context.Background(), token); err != nil {
					logger.Debugf("stored tokens unusable: %v", err)
				}
			}
			youtubeService = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		YouTube:    youtubeService,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "ytcull",
		Usage:    "Browse YouTube playlists and bulk-remove items with an audit log",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
