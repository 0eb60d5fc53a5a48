package main

import (
	"courtbook/config"
	"courtbook/helper"
	"courtbook/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) != 2 {
		log.Fatal().Msg("usage: migrate up|down|step-up|drop")
	}

	direction, err := helper.ParseDirection(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err = helper.Runner(cfg, direction); err != nil {
		log.Fatal().Err(err).Str("direction", string(direction)).Msg("Migration failed")
	}
}
