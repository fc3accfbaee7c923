package service

import (
	"context"
	"fmt"
	"log/slog"

	"linksea/internal/cache"
	"linksea/internal/repository"
)

type AccountService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	linkRepo    repository.LinkRepository
	clickRepo   repository.ClickRepository
}

func NewAccountService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickRepository,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		linkRepo:    linkRepo,
		clickRepo:   clickRepo,
	}
}

// DeleteAccount erases a user and everything they own. Deletion order is
// links, clicks, profile, then the user row, so a failure partway leaves
// orphaned-but-harmless rows rather than a live profile pointing at deleted
// data. There is no undo.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.linkRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	if err := s.clickRepo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete click events: %w", err)
	}
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	cache.InvalidatePublicProfile(ctx, profile.Username)
	slog.InfoContext(ctx, "account erased", "user_id", userID)
	return nil
}
