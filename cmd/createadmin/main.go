package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "", "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to $ADMIN_PASSWORD)")
	role := flag.String("role", model.AdminRoleAdmin, "admin role")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -username <name> [-password <secret>] [-role ADMIN]")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg(".env could not be read, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	admin, err := database.UpsertAdmin(store.GetDB().(*gorm.DB), *username, *password, *role)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to save admin")
	}

	fmt.Printf("admin %q saved (id %s, role %s)\n", admin.Username, admin.ID, admin.Role)
}
