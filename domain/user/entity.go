// Package user defines the account entity backing authentication.
package user

import (
	"time"
)

// User is an account that owns tracked products.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the authenticated identity extracted from an access token.
type Claims struct {
	UserID string
	Email  string
}
