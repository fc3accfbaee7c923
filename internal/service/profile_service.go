package service

import (
	"context"

	"linksea/internal/cache"
	"linksea/internal/models"
	"linksea/internal/repository"
	"linksea/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	linkRepo    repository.LinkRepository
}

type UpdateProfileInput struct {
	UserID    uint
	Username  *string
	Bio       *string
	AvatarURL *string
}

// PublicProfile is the visitor-facing payload: the profile plus its ordered
// links. It is composed from two cache units so link mutations (which know
// only the owner's user ID) can invalidate the link list without resolving
// the username.
type PublicProfile struct {
	Username  string        `json:"username"`
	Bio       string        `json:"bio,omitempty"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Links     []models.Link `json:"links"`
}

// cachedProfile is the profile half of the public payload, cached under the
// username key. UserID is carried so the link half can be resolved on a hit.
type cachedProfile struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func NewProfileService(profileRepo repository.ProfileRepository, linkRepo repository.LinkRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, linkRepo: linkRepo}
}

const maxBioLen = 500

// GetPublicProfile resolves a public page by username. A disabled profile is
// indistinguishable from a missing one, both return NotFound.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	var meta cachedProfile
	err := cache.Aside(ctx, cache.PublicProfileKey(username), &meta, cache.PublicProfileTTL, func() error {
		profile, err := s.profileRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if profile.IsDisabled {
			return models.NewNotFoundError("Profile", username)
		}
		meta = cachedProfile{
			UserID:    profile.ID,
			Username:  profile.Username,
			Bio:       profile.Bio,
			AvatarURL: profile.AvatarURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	links := []models.Link{}
	err = cache.Aside(ctx, cache.LinksKey(meta.UserID), &links, cache.LinksTTL, func() error {
		fetched, err := s.linkRepo.ListByUser(ctx, meta.UserID)
		if err != nil {
			return err
		}
		links = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		Username:  meta.Username,
		Bio:       meta.Bio,
		AvatarURL: meta.AvatarURL,
		Links:     links,
	}, nil
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	previousUsername := profile.Username

	if in.Username != nil && *in.Username != profile.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.profileRepo.UsernameTaken(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("Username is already taken")
		}
		profile.Username = *in.Username
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		profile.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}

	// The check above races with concurrent signups; the unique index on
	// username is the real guard and duplicates surface from Update.
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	cache.InvalidatePublicProfile(ctx, profile.Username)
	if previousUsername != profile.Username {
		cache.InvalidatePublicProfile(ctx, previousUsername)
	}
	return profile, nil
}

// SetDisabled hides or restores the public page without touching any data.
func (s *ProfileService) SetDisabled(ctx context.Context, userID uint, disabled bool) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.IsDisabled = disabled
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	// Disabling must take effect before any cached copy expires.
	cache.InvalidatePublicProfile(ctx, profile.Username)
	return profile, nil
}

// UsernameAvailable reports whether a username is valid and unclaimed.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	taken, err := s.profileRepo.UsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
