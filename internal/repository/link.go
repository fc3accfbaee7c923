package repository

import (
	"context"
	"database/sql"
	"errors"

	"linksea/internal/cache"
	"linksea/internal/models"

	"gorm.io/gorm"
)

// LinkRepository defines persistence operations for a user's ordered links.
type LinkRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Link, error)
	GetByID(ctx context.Context, id uint) (*models.Link, error)
	Create(ctx context.Context, link *models.Link) error
	Update(ctx context.Context, link *models.Link) error
	Delete(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	// NextPosition returns max(position)+1 for the user, 0 when no links exist.
	NextPosition(ctx context.Context, userID uint) (int, error)
	// UpdatePositions assigns position = index for each id, in order, inside a
	// single transaction. Readers never observe a partially renumbered set.
	UpdatePositions(ctx context.Context, userID uint, orderedIDs []uint) error
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a new LinkRepository implementation.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) ListByUser(ctx context.Context, userID uint) ([]models.Link, error) {
	links := []models.Link{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&links).Error
	return links, err
}

func (r *linkRepository) GetByID(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Link", id)
		}
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return err
	}
	cache.InvalidateLinks(ctx, link.UserID)
	return nil
}

func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return err
	}
	cache.InvalidateLinks(ctx, link.UserID)
	return nil
}

func (r *linkRepository) Delete(ctx context.Context, id uint) error {
	link, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Link{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateLinks(ctx, link.UserID)
	return nil
}

func (r *linkRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Link{}).Error; err != nil {
		return err
	}
	cache.InvalidateLinks(ctx, userID)
	return nil
}

func (r *linkRepository) NextPosition(ctx context.Context, userID uint) (int, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

func (r *linkRepository) UpdatePositions(ctx context.Context, userID uint, orderedIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range orderedIDs {
			res := tx.Model(&models.Link{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("position", idx)
			if res.Error != nil {
				return res.Error
			}
			// A vanished or foreign id aborts and rolls back the whole batch.
			if res.RowsAffected == 0 {
				return models.NewNotFoundError("Link", id)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateLinks(ctx, userID)
	return nil
}
