package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		rdb.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			dest.Name = "from-store"
			dest.Count = 7
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "k1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "from-store", first.Name)

	var second payload
	require.NoError(t, Aside(ctx, "k1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	var dest payload
	fetchErr := errors.New("store down")
	err := Aside(ctx, "k2", &dest, time.Minute, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)

	fetched := false
	require.NoError(t, Aside(ctx, "k2", &dest, time.Minute, func() error {
		fetched = true
		dest.Name = "ok"
		return nil
	}))
	assert.True(t, fetched, "failed fetch must not leave a cached entry")
}

func TestAside_NilClientBypasses(t *testing.T) {
	SetClient(nil)

	var dest payload
	require.NoError(t, Aside(context.Background(), "k3", &dest, time.Minute, func() error {
		dest.Count = 3
		return nil
	}))
	assert.Equal(t, 3, dest.Count)
}

func TestInvalidate(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	var dest payload
	require.NoError(t, Aside(ctx, PublicProfileKey("corvid"), &dest, time.Minute, func() error {
		dest.Name = "corvid"
		return nil
	}))
	require.True(t, mr.Exists(PublicProfileKey("corvid")))

	InvalidatePublicProfile(ctx, "corvid")
	assert.False(t, mr.Exists(PublicProfileKey("corvid")))
}
