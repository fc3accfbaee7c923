package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PublicProfileKeyPrefix = "profile:%s"
	LinksKeyPrefix         = "links:%d"
)

const (
	// PublicProfileTTL bounds staleness of the visitor-facing page payload.
	PublicProfileTTL = 5 * time.Minute
	LinksTTL         = 5 * time.Minute
)

func PublicProfileKey(username string) string {
	return fmt.Sprintf(PublicProfileKeyPrefix, username)
}

func LinksKey(userID uint) string {
	return fmt.Sprintf(LinksKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePublicProfile drops the cached visitor payload for a username.
func InvalidatePublicProfile(ctx context.Context, username string) {
	Invalidate(ctx, PublicProfileKey(username))
}

// InvalidateLinks drops the cached link list for a user.
func InvalidateLinks(ctx context.Context, userID uint) {
	Invalidate(ctx, LinksKey(userID))
}
