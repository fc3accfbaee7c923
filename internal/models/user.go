// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an authenticated account. Public identity lives on Profile;
// this row only carries credentials.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
