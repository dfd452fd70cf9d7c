package main

import (
	"agenda/config"
	"agenda/di"
	"agenda/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	jobs := di.InitializeScheduler()
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer jobs.Stop()

	http := di.InitializeService()
	http.Serve()
}
