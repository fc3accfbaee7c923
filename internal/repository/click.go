package repository

import (
	"context"
	"time"

	"linksea/internal/models"

	"gorm.io/gorm"
)

// ClickRepository defines persistence operations for the append-only click log.
type ClickRepository interface {
	Create(ctx context.Context, click *models.ClickEvent) error
	ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]models.ClickEvent, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

type clickRepository struct {
	db *gorm.DB
}

// NewClickRepository returns a new ClickRepository implementation.
func NewClickRepository(db *gorm.DB) ClickRepository {
	return &clickRepository{db: db}
}

func (r *clickRepository) Create(ctx context.Context, click *models.ClickEvent) error {
	return r.db.WithContext(ctx).Create(click).Error
}

func (r *clickRepository) ListByUserSince(ctx context.Context, userID uint, since time.Time) ([]models.ClickEvent, error) {
	clicks := []models.ClickEvent{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND clicked_at >= ?", userID, since).
		Order("clicked_at ASC").
		Find(&clicks).Error
	return clicks, err
}

func (r *clickRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.ClickEvent{}).Error
}
