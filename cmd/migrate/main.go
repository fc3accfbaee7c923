// Command migrate applies the database schema for LinkSea.
package main

import (
	"flag"
	"log"

	"linksea/internal/config"
	"linksea/internal/database"
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect already runs AutoMigrate outside production; running Migrate
	// explicitly keeps this command meaningful for production databases.
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✅ Schema migration complete")
}
