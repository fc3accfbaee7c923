// Command main runs the database seeder for LinkSea.
package main

import (
	"flag"
	"log"

	"linksea/internal/config"
	"linksea/internal/database"
	"linksea/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	linksPerUser := flag.Int("links", 5, "Number of links per user")
	numClicks := flag.Int("clicks", 2000, "Number of click events to create")
	maxDays := flag.Int("days", 45, "How many days back click timestamps spread")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a preset by name (e.g. demo) or YAML file path instead of generating data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)\n", *preset)
	} else {
		log.Printf("Target: %d users, %d links each, %d clicks, clean=%v\n",
			*numUsers, *linksPerUser, *numClicks, *shouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		if err := seed.ApplyPreset(db, *preset); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
		log.Println("✅ Preset applied")
		return
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		LinksPerUser: *linksPerUser,
		NumClicks:    *numClicks,
		MaxDays:      *maxDays,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✅ Seeding complete")
}
