package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/listkeep-io/listkeep/internal/api"
	"github.com/listkeep-io/listkeep/internal/config"
	"github.com/listkeep-io/listkeep/internal/database"
	"github.com/listkeep-io/listkeep/internal/logger"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Init(cfg); err != nil {
		return nil, err
	}

	return api.NewApi(cfg)
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	logger.Init()
	log.Info().Str("version", version).Str("config", *configPath).Msg("starting listkeep API")

	apiServer, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("initialization failed")
	}
	defer database.Close()

	if err := apiServer.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
