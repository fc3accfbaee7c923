package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linksea/internal/models"
	"linksea/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clickRepoStub is a stub for repository.ClickRepository.
type clickRepoStub struct {
	createFn          func(context.Context, *models.ClickEvent) error
	listByUserSinceFn func(context.Context, uint, time.Time) ([]models.ClickEvent, error)
	deleteByUserFn    func(context.Context, uint) error
}

func (s *clickRepoStub) Create(ctx context.Context, click *models.ClickEvent) error {
	return s.createFn(ctx, click)
}
func (s *clickRepoStub) ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]models.ClickEvent, error) {
	return s.listByUserSinceFn(ctx, userID, since)
}
func (s *clickRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

func noopClickRepo() *clickRepoStub {
	return &clickRepoStub{
		createFn: func(_ context.Context, _ *models.ClickEvent) error { return nil },
		listByUserSinceFn: func(_ context.Context, _ uint, _ time.Time) ([]models.ClickEvent, error) {
			return nil, nil
		},
		deleteByUserFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type clickPublisherStub struct {
	publishFn func(context.Context, uint, uint) error
}

func (s *clickPublisherStub) PublishClick(ctx context.Context, userID, linkID uint) error {
	return s.publishFn(ctx, userID, linkID)
}

func TestClickService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and publishes", func(t *testing.T) {
		repo := noopClickRepo()
		var stored *models.ClickEvent
		repo.createFn = func(_ context.Context, click *models.ClickEvent) error {
			stored = click
			return nil
		}
		var publishedUser, publishedLink uint
		pub := &clickPublisherStub{publishFn: func(_ context.Context, userID, linkID uint) error {
			publishedUser, publishedLink = userID, linkID
			return nil
		}}

		svc := NewClickService(repo, pub)
		svc.Record(ctx, RecordClickInput{LinkID: 5, OwnerUserID: 2, Referrer: "https://t.co/x"})

		require.NotNil(t, stored)
		assert.Equal(t, uint(5), stored.LinkID)
		assert.Equal(t, uint(2), stored.UserID)
		assert.Equal(t, "https://t.co/x", stored.Referrer)
		assert.WithinDuration(t, time.Now().UTC(), stored.ClickedAt, 5*time.Second)
		assert.Equal(t, uint(2), publishedUser)
		assert.Equal(t, uint(5), publishedLink)
	})

	t.Run("swallows store failures", func(t *testing.T) {
		repo := noopClickRepo()
		repo.createFn = func(_ context.Context, _ *models.ClickEvent) error {
			return errors.New("connection refused")
		}
		published := false
		pub := &clickPublisherStub{publishFn: func(_ context.Context, _, _ uint) error {
			published = true
			return nil
		}}

		svc := NewClickService(repo, pub)
		// Must not panic and must not publish a click that was never stored.
		svc.Record(ctx, RecordClickInput{LinkID: 5, OwnerUserID: 2})
		assert.False(t, published)
	})

	t.Run("publish failure does not surface", func(t *testing.T) {
		pub := &clickPublisherStub{publishFn: func(_ context.Context, _, _ uint) error {
			return errors.New("redis down")
		}}
		svc := NewClickService(noopClickRepo(), pub)
		svc.Record(ctx, RecordClickInput{LinkID: 1, OwnerUserID: 1})
	})

	t.Run("nil publisher is tolerated", func(t *testing.T) {
		svc := NewClickService(noopClickRepo(), nil)
		svc.Record(ctx, RecordClickInput{LinkID: 1, OwnerUserID: 1})
	})

	t.Run("typed-nil notifier publisher is tolerated", func(t *testing.T) {
		// Mirrors the Redis-less server wiring: a nil *Notifier inside the
		// interface must not panic once the click is persisted.
		repo := noopClickRepo()
		stored := false
		repo.createFn = func(_ context.Context, _ *models.ClickEvent) error {
			stored = true
			return nil
		}
		svc := NewClickService(repo, (*notifications.Notifier)(nil))
		svc.Record(ctx, RecordClickInput{LinkID: 3, OwnerUserID: 4})
		assert.True(t, stored)
	})
}
