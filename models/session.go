// models/session.go
package models

import "time"

type SessionStatus string

const (
	SessionActive SessionStatus = "ACTIVE"
	SessionClosed SessionStatus = "CLOSED"
)

type Session struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Short human-readable join code, e.g. PCKL-7B2Q. Stored uppercase,
	// immutable after creation.
	Code string `json:"code" gorm:"uniqueIndex;not null;size:12"`

	Name string `json:"name" gorm:"not null;size:100"`

	// Optional link to a group so the session can show registered members.
	GroupID *uint `json:"group_id,omitempty" gorm:"index"`

	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	Status      SessionStatus `json:"status" gorm:"not null;default:'ACTIVE';size:10"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null"`
}

func (Session) TableName() string {
	return "sessions"
}
