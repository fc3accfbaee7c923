package service

import (
	"context"
	"net/url"
	"strings"

	"linksea/internal/models"
	"linksea/internal/observability"
	"linksea/internal/repository"
	"linksea/internal/validation"
)

type LinkService struct {
	linkRepo repository.LinkRepository
}

type CreateLinkInput struct {
	UserID      uint
	Title       string
	URL         string
	Description string
	Icon        string
}

// UpdateLinkInput carries a partial update; nil fields are left unchanged.
// Position is deliberately absent, ordering only changes through Reorder.
type UpdateLinkInput struct {
	UserID      uint
	LinkID      uint
	Title       *string
	URL         *string
	Description *string
	Icon        *string
}

func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

const (
	maxLinkTitleLen       = 100
	maxLinkURLLen         = 2048
	maxLinkDescriptionLen = 500
)

func validateLinkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxLinkTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	return nil
}

func validateLinkURL(raw string) error {
	if raw == "" {
		return models.NewValidationError("URL is required")
	}
	if len(raw) > maxLinkURLLen {
		return models.NewValidationError("URL too long (max 2048 characters)")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return models.NewValidationError("URL is not valid")
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return models.NewValidationError("URL must use http or https")
	}
	return nil
}

func (s *LinkService) ListLinks(ctx context.Context, userID uint) ([]models.Link, error) {
	return s.linkRepo.ListByUser(ctx, userID)
}

func (s *LinkService) CreateLink(ctx context.Context, in CreateLinkInput) (*models.Link, error) {
	if err := validateLinkTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateLinkURL(in.URL); err != nil {
		return nil, err
	}
	if len(in.Description) > maxLinkDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 500 characters)")
	}
	if err := validation.ValidateIcon(in.Icon); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	position, err := s.linkRepo.NextPosition(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	link := &models.Link{
		UserID:      in.UserID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Icon:        in.Icon,
		Position:    position,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) UpdateLink(ctx context.Context, in UpdateLinkInput) (*models.Link, error) {
	link, err := s.getOwnedLink(ctx, in.UserID, in.LinkID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validateLinkTitle(*in.Title); err != nil {
			return nil, err
		}
		link.Title = *in.Title
	}
	if in.URL != nil {
		if err := validateLinkURL(*in.URL); err != nil {
			return nil, err
		}
		link.URL = *in.URL
	}
	if in.Description != nil {
		if len(*in.Description) > maxLinkDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 500 characters)")
		}
		link.Description = *in.Description
	}
	if in.Icon != nil {
		if err := validation.ValidateIcon(*in.Icon); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		link.Icon = *in.Icon
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, userID, linkID uint) error {
	if _, err := s.getOwnedLink(ctx, userID, linkID); err != nil {
		return err
	}
	return s.linkRepo.Delete(ctx, linkID)
}

// Reorder replaces the user's ordering wholesale. The submitted id set must
// exactly match the user's current links; anything else is rejected so a
// concurrent create/delete can't be silently renumbered around. Returns the
// fresh authoritative ordering.
func (s *LinkService) Reorder(ctx context.Context, userID uint, orderedIDs []uint) ([]models.Link, error) {
	current, err := s.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateReorderSet(current, orderedIDs); err != nil {
		observability.ReordersRejected.Inc()
		return nil, err
	}

	if err := s.linkRepo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
		observability.ReordersRejected.Inc()
		return nil, err
	}
	observability.ReordersApplied.Inc()

	return s.linkRepo.ListByUser(ctx, userID)
}

func validateReorderSet(current []models.Link, orderedIDs []uint) error {
	if len(orderedIDs) != len(current) {
		return models.NewValidationError("Ordering must include every link exactly once")
	}
	owned := make(map[uint]struct{}, len(current))
	for _, link := range current {
		owned[link.ID] = struct{}{}
	}
	seen := make(map[uint]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := owned[id]; !ok {
			return models.NewValidationError("Ordering references an unknown link")
		}
		if _, dup := seen[id]; dup {
			return models.NewValidationError("Ordering must include every link exactly once")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// getOwnedLink fetches a link and hides ownership mismatches behind the same
// NotFound the caller gets for a missing id.
func (s *LinkService) getOwnedLink(ctx context.Context, userID, linkID uint) (*models.Link, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, models.NewNotFoundError("Link", linkID)
	}
	return link, nil
}
