// models/user.go
package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Email is nil for guest members; guests are created with a display
	// name only and can never authenticate.
	Email    *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string  `json:"-"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url"`
	Role     Role    `gorm:"not null;default:'USER';size:10" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsGuest reports whether this user is a lightweight guest account.
func (u *User) IsGuest() bool {
	return u.Role == RoleGuest
}

// EmailOrEmpty flattens the nullable email for responses and sorting.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
