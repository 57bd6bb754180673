package main

import (
	"context"
	"log"
	"os"

	"github.com/alkime/quill/internal/config"
	"github.com/alkime/quill/internal/keyring"
	"github.com/alkime/quill/internal/logger"
	"github.com/alkime/quill/internal/server"
	"github.com/alkime/quill/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	keyring.FillConfig(cfg)

	logger := logger.SetupLogger(cfg, logger.JSON, os.Stdout)

	logger.Info("Starting quill server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"posts_dir", cfg.PostsDir,
		"site_dir", cfg.SiteDir,
	)

	svc, err := service.FromConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	if err := server.New(cfg, svc, logger).Run(context.Background()); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
