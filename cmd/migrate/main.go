package main

import (
	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/utils/logger"
)

func main() {
	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg(".env could not be read, using system environment variables")
	}

	env, err := config.Get()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read configuration")
	}

	// migrate always creates the database when it is missing
	if err := database.EnsureDatabase(env); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure database")
	}

	store, err := database.StartGORM()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	logger.Info().Str("db", env.DB_NAME).Msg("schema is up to date")
}
