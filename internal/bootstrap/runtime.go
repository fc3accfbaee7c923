// Package bootstrap wires shared process-level infrastructure: database,
// Redis, and optional development seeding.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"linksea/internal/cache"
	"linksea/internal/config"
	"linksea/internal/database"
	"linksea/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ApplySeedPreset applies cfg.SeedPreset after connecting, when set.
	ApplySeedPreset bool
}

// InitRuntime connects to DB and Redis and optionally applies a seed preset.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.ApplySeedPreset && strings.TrimSpace(cfg.SeedPreset) != "" {
		if !strings.EqualFold(cfg.Env, "development") && !strings.EqualFold(cfg.Env, "test") {
			return nil, nil, fmt.Errorf("SEED_PRESET is set but APP_ENV is %q; presets only apply in development or test", cfg.Env)
		}
		if err := seed.ApplyPreset(db, cfg.SeedPreset); err != nil {
			return nil, nil, fmt.Errorf("failed to apply seed preset %q: %w", cfg.SeedPreset, err)
		}
		log.Printf("applied seed preset %q", cfg.SeedPreset)
	}

	return db, r, nil
}
