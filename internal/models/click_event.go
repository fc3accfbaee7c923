package models

import (
	"time"
)

// ClickEvent records one visitor activating a link. Rows are immutable once
// written and are never deleted in normal operation (only during account
// erasure).
//
// LinkID is a weak reference: no foreign key constraint, because the link may
// be deleted while its click history remains. UserID is denormalized from the
// profile owner so analytics can filter without a join.
type ClickEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LinkID    uint      `gorm:"not null;index" json:"link_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ClickedAt time.Time `gorm:"not null;index" json:"clicked_at"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}
