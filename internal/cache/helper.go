package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"linksea/internal/middleware"
	"linksea/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on hit, unmarshal the cached JSON
// into dest; on miss, run fetch (which must populate dest) and write the
// result back with the given TTL. Cache failures degrade to the fetch path,
// never to an error.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		observability.CacheRequests.WithLabelValues("bypass").Inc()
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if jerr := json.Unmarshal([]byte(raw), dest); jerr == nil {
			observability.CacheRequests.WithLabelValues("hit").Inc()
			return nil
		}
		// Corrupt entry; drop it and fall through to the fetch.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}

	observability.CacheRequests.WithLabelValues("miss").Inc()
	if err := fetch(); err != nil {
		return err
	}

	if data, merr := json.Marshal(dest); merr == nil {
		if serr := client.Set(ctx, key, data, ttl).Err(); serr != nil {
			middleware.Logger.WarnContext(ctx, "cache write failed",
				slog.String("key", key), slog.String("error", serr.Error()))
		}
	}
	return nil
}
