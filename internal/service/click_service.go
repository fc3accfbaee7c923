package service

import (
	"context"
	"log/slog"
	"time"

	"linksea/internal/models"
	"linksea/internal/observability"
	"linksea/internal/repository"
)

// ClickPublisher fans a recorded click out to the owner's live dashboard
// connections. Implemented by notifications.Notifier.
type ClickPublisher interface {
	PublishClick(ctx context.Context, userID, linkID uint) error
}

type ClickService struct {
	clickRepo repository.ClickRepository
	publisher ClickPublisher
}

type RecordClickInput struct {
	LinkID      uint
	OwnerUserID uint
	Referrer    string
	UserAgent   string
}

func NewClickService(clickRepo repository.ClickRepository, publisher ClickPublisher) *ClickService {
	return &ClickService{clickRepo: clickRepo, publisher: publisher}
}

// Record appends one click event. Best-effort by contract: a store failure is
// logged, counted, and swallowed so the visitor's navigation is never blocked.
// No retry and no dedup; the analytics are approximate by design of the data,
// not of this path.
func (s *ClickService) Record(ctx context.Context, in RecordClickInput) {
	click := &models.ClickEvent{
		LinkID:    in.LinkID,
		UserID:    in.OwnerUserID,
		ClickedAt: time.Now().UTC(),
		Referrer:  in.Referrer,
		UserAgent: in.UserAgent,
	}

	if err := s.clickRepo.Create(ctx, click); err != nil {
		observability.ClicksDropped.Inc()
		slog.WarnContext(ctx, "click event dropped",
			"link_id", in.LinkID, "user_id", in.OwnerUserID, "err", err)
		return
	}
	observability.ClicksRecorded.Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishClick(ctx, in.OwnerUserID, in.LinkID); err != nil {
			slog.WarnContext(ctx, "click feed publish failed",
				"user_id", in.OwnerUserID, "err", err)
		}
	}
}
