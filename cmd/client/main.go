package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vetfinder/internal/client"
	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
	"github.com/MKhiriev/vetfinder/internal/securestore"
	"github.com/MKhiriev/vetfinder/internal/service"
	"github.com/MKhiriev/vetfinder/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("vetfinder-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	keychain, err := securestore.NewKeychainBackend(cfg.SecureStore.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("create keychain backend")
	}

	fallbackDB, err := securestore.OpenFallbackDB(cfg.SecureStore.FallbackDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open fallback database")
	}
	defer func() { _ = fallbackDB.Close() }()

	store := securestore.NewStore(keychain, securestore.NewFallbackBackend(fallbackDB), log.GetChildLogger())

	ctx := context.Background()
	docStore, authBackend, err := remote.NewBackends(ctx, cfg.Remote)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote backends")
	}
	defer func() { _ = docStore.Close() }()

	gateway := remote.NewGateway(docStore, cfg.Policy.Countries, log.GetChildLogger())
	services := service.NewServices(store, gateway, authBackend, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
