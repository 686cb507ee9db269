// models/group.go
package models

import "time"

type Group struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:100"`
	CreatorID uint   `json:"creator_id" gorm:"not null;index"`
	Creator   *User  `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Members   []User `json:"members,omitempty" gorm:"many2many:group_members"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Group) TableName() string {
	return "groups"
}
