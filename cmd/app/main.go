package main

import (
	"courtbook/config"
	"courtbook/di"
	"courtbook/helper"
	"courtbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Courtbook API
// @version 1.0
// @description Court reservations, blocks and block reasons for a tennis club.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
