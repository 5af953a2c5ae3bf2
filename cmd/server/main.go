package main

import (
	"context"
	"fmt"

	_ "github.com/joho/godotenv/autoload"

	"github.com/notelock/notelock/internal/config"
	"github.com/notelock/notelock/internal/handler"
	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/server"
	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/session"
	"github.com/notelock/notelock/internal/store"
	"github.com/notelock/notelock/internal/workers"
	"github.com/notelock/notelock/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("notelock-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	if err = migrations.Migrate(storages.DB.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	sessions := session.NewMemoryStore()

	services, err := service.NewServices(*storages, sessions, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, sessions, cfg.Workers, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
