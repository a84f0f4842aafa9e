package main

import (
	"fmt"
	"strings"

	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg(".env could not be read, using system environment variables")
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	gormDB := store.GetDB().(*gorm.DB)

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Institute Site - Database Seeding")
	fmt.Println(separator)

	if err := database.RunSeeds(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed")
	fmt.Println("The admin account comes from ADMIN_USERNAME and ADMIN_PASSWORD; it is skipped when they are unset.")
	fmt.Println(separator)
}
