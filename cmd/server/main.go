package main

import (
	"fmt"

	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vetfinder-emulator")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg.Server).Msg("received configs")

	handler := server.NewHandler(server.NewMemStore(), cfg.Server, log)
	srv := server.NewServer(handler, cfg.Server, log)

	if err = srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server run error")
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
