package main

import (
	"context"
	"fmt"

	"github.com/placerhq/placer-server/internal/config"
	"github.com/placerhq/placer-server/internal/geocoder"
	"github.com/placerhq/placer-server/internal/handler"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/server"
	"github.com/placerhq/placer-server/internal/service"
	"github.com/placerhq/placer-server/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("placer-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages, err := store.NewStorages(ctx, db, cfg.Storage.Images, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	geo := geocoder.NewNominatimGeocoder(cfg.Geocoder, log)

	services := service.NewServices(storages, geo, cfg, log)

	handlers, err := handler.NewHandlers(services, storages.ImageStore, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

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
