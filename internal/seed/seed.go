// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"linksea/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	LinksPerUser int
	NumClicks    int
	// MaxDays bounds how far into the past generated click timestamps spread.
	MaxDays     int
	ShouldClean bool
	// DryRun builds entities without persisting them.
	DryRun bool
}

// Seed populates the database with generated users, profiles, links, and
// click history.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d clicks...", opts.NumUsers, opts.NumClicks)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	var links []models.Link
	for i := range users {
		created, err := f.CreateLinks(&users[i], opts.LinksPerUser)
		if err != nil {
			return fmt.Errorf("failed to create links for user %d: %w", users[i].ID, err)
		}
		links = append(links, created...)
	}
	log.Printf("✓ %d links created", len(links))

	clicks, err := f.CreateClicks(links, opts.NumClicks)
	if err != nil {
		return fmt.Errorf("failed to create clicks: %w", err)
	}
	log.Printf("✓ %d click events created", len(clicks))

	log.Println("🌱 Seeding complete")
	return nil
}

// clearData removes generated rows in dependency order. Clicks reference
// links weakly, so order only matters for readability of partial failures.
func clearData(db *gorm.DB) error {
	tables := []string{"click_events", "links", "profiles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// seedPasswordHash hashes the shared development password once per process.
var seedPasswordHash = func() string {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return string(hashed)
}()
