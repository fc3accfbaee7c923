package models

import (
	"time"
)

// Link is one outbound entry on a user's public profile.
//
// Among a user's links, Position values are unique and define display order.
// Creates append at max+1 and reorders rewrite the whole set to 0..N-1;
// deletes may leave gaps, which readers tolerate because listing always
// orders by position ascending.
//
// Links are hard-deleted: ClickEvents reference them weakly and must outlive
// them.
type Link struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	URL         string    `gorm:"not null" json:"url"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	// Icon is a key into the fixed icon catalog (validation.IconKeys).
	Icon      string    `json:"icon,omitempty"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
