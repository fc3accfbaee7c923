package service

import (
	"context"
	"testing"

	"linksea/internal/cache"
	"linksea/internal/models"
	"linksea/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Profile, error)
	getByUsernameFn func(context.Context, string) (*models.Profile, error)
	usernameTakenFn func(context.Context, string) (bool, error)
	createFn        func(context.Context, *models.Profile) error
	updateFn        func(context.Context, *models.Profile) error
	deleteFn        func(context.Context, uint) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *profileRepoStub) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.usernameTakenFn(ctx, username)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, Username: "someone"}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.Profile, error) {
			return &models.Profile{ID: 1, Username: username}, nil
		},
		usernameTakenFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn:        func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:        func(_ context.Context, _ *models.Profile) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

func TestProfileService_GetPublicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns profile with ordered links", func(t *testing.T) {
		profileRepo := noopProfileRepo()
		profileRepo.getByUsernameFn = func(_ context.Context, username string) (*models.Profile, error) {
			return &models.Profile{ID: 3, Username: username, Bio: "hi"}, nil
		}
		linkRepo := noopLinkRepo()
		linkRepo.listByUserFn = func(_ context.Context, userID uint) ([]models.Link, error) {
			assert.Equal(t, uint(3), userID)
			return []models.Link{{ID: 1, Position: 0}, {ID: 2, Position: 1}}, nil
		}

		svc := NewProfileService(profileRepo, linkRepo)
		page, err := svc.GetPublicProfile(ctx, "casey")
		require.NoError(t, err)
		assert.Equal(t, "casey", page.Username)
		assert.Equal(t, "hi", page.Bio)
		assert.Len(t, page.Links, 2)
	})

	t.Run("disabled profile reads as missing", func(t *testing.T) {
		profileRepo := noopProfileRepo()
		profileRepo.getByUsernameFn = func(_ context.Context, username string) (*models.Profile, error) {
			return &models.Profile{ID: 3, Username: username, IsDisabled: true}, nil
		}

		svc := NewProfileService(profileRepo, noopLinkRepo())
		_, err := svc.GetPublicProfile(ctx, "casey")
		assertErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("missing profile", func(t *testing.T) {
		profileRepo := noopProfileRepo()
		profileRepo.getByUsernameFn = func(_ context.Context, username string) (*models.Profile, error) {
			return nil, models.NewNotFoundError("Profile", username)
		}

		svc := NewProfileService(profileRepo, noopLinkRepo())
		_, err := svc.GetPublicProfile(ctx, "ghost")
		assertErrorCode(t, err, "NOT_FOUND")
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("changes username when free", func(t *testing.T) {
		repo := noopProfileRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, Username: "old_name"}, nil
		}
		var saved *models.Profile
		repo.updateFn = func(_ context.Context, profile *models.Profile) error {
			saved = profile
			return nil
		}

		svc := NewProfileService(repo, noopLinkRepo())
		profile, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: strPtr("new-name")})
		require.NoError(t, err)
		assert.Equal(t, "new-name", profile.Username)
		assert.Equal(t, "new-name", saved.Username)
	})

	t.Run("taken username conflicts", func(t *testing.T) {
		repo := noopProfileRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, Username: "old_name"}, nil
		}
		repo.usernameTakenFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

		svc := NewProfileService(repo, noopLinkRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: strPtr("claimed")})
		assertErrorCode(t, err, "CONFLICT")
	})

	t.Run("same username skips the availability check", func(t *testing.T) {
		repo := noopProfileRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, Username: "keep_me"}, nil
		}
		repo.usernameTakenFn = func(_ context.Context, _ string) (bool, error) {
			t.Fatal("availability check must not run for an unchanged username")
			return true, nil
		}

		svc := NewProfileService(repo, noopLinkRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: strPtr("keep_me"), Bio: strPtr("new bio")})
		require.NoError(t, err)
	})

	t.Run("invalid or reserved usernames rejected", func(t *testing.T) {
		svc := NewProfileService(noopProfileRepo(), noopLinkRepo())
		for _, username := range []string{"ab", "has space", "admin", "way$too&weird"} {
			_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: strPtr(username)})
			assertErrorCode(t, err, "VALIDATION_ERROR")
		}
	})
}

func TestProfileService_SetDisabled(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Profile, error) {
		return &models.Profile{ID: id, Username: "casey"}, nil
	}
	var saved *models.Profile
	repo.updateFn = func(_ context.Context, profile *models.Profile) error {
		saved = profile
		return nil
	}

	svc := NewProfileService(repo, noopLinkRepo())
	profile, err := svc.SetDisabled(context.Background(), 1, true)
	require.NoError(t, err)
	assert.True(t, profile.IsDisabled)
	assert.True(t, saved.IsDisabled)

	profile, err = svc.SetDisabled(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, profile.IsDisabled)
}

func TestProfileService_UsernameAvailable(t *testing.T) {
	ctx := context.Background()

	repo := noopProfileRepo()
	repo.usernameTakenFn = func(_ context.Context, username string) (bool, error) {
		return username == "claimed", nil
	}
	svc := NewProfileService(repo, noopLinkRepo())

	available, err := svc.UsernameAvailable(ctx, "fresh-name")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.UsernameAvailable(ctx, "claimed")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.UsernameAvailable(ctx, "x")
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func setupPublicPageCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})
}

func TestGetPublicProfile_LinkMutationInvalidatesCache(t *testing.T) {
	setupPublicPageCache(t)
	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Link{}))

	linkRepo := repository.NewLinkRepository(db)

	profileFetches := 0
	profileRepo := noopProfileRepo()
	profileRepo.getByUsernameFn = func(_ context.Context, username string) (*models.Profile, error) {
		profileFetches++
		return &models.Profile{ID: 9, Username: username}, nil
	}

	svc := NewProfileService(profileRepo, linkRepo)

	require.NoError(t, linkRepo.Create(ctx, &models.Link{
		UserID: 9, Title: "First", URL: "https://a.example", Position: 0,
	}))

	page, err := svc.GetPublicProfile(ctx, "casey")
	require.NoError(t, err)
	require.Len(t, page.Links, 1)

	// A later create must show up on the next public read, not after the TTL.
	require.NoError(t, linkRepo.Create(ctx, &models.Link{
		UserID: 9, Title: "Second", URL: "https://b.example", Position: 1,
	}))

	page, err = svc.GetPublicProfile(ctx, "casey")
	require.NoError(t, err)
	require.Len(t, page.Links, 2)

	// The profile half stays cached across link mutations.
	assert.Equal(t, 1, profileFetches)
}

func TestSetDisabled_InvalidatesPublicPage(t *testing.T) {
	setupPublicPageCache(t)
	ctx := context.Background()

	stored := &models.Profile{ID: 1, Username: "casey"}
	repo := noopProfileRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		copied := *stored
		return &copied, nil
	}
	repo.getByUsernameFn = func(_ context.Context, _ string) (*models.Profile, error) {
		copied := *stored
		return &copied, nil
	}
	repo.updateFn = func(_ context.Context, profile *models.Profile) error {
		stored = profile
		return nil
	}

	svc := NewProfileService(repo, noopLinkRepo())

	_, err := svc.GetPublicProfile(ctx, "casey")
	require.NoError(t, err)

	_, err = svc.SetDisabled(ctx, 1, true)
	require.NoError(t, err)

	// The cached page must not outlive the toggle.
	_, err = svc.GetPublicProfile(ctx, "casey")
	assertErrorCode(t, err, "NOT_FOUND")
}
