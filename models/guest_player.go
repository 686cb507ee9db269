// models/guest_player.go
package models

import "time"

// GuestPlayer is a person who joined a session via its join code without
// registering. They only exist within the lifetime of the session and are
// not Users.
type GuestPlayer struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SessionID   uint      `json:"session_id" gorm:"not null;index"`
	DisplayName string    `json:"display_name" gorm:"not null;size:100"`
	JoinedAt    time.Time `json:"joined_at" gorm:"not null"`
}

func (GuestPlayer) TableName() string {
	return "guest_players"
}
