package models

import (
	"time"
)

// Project is a posted job. Projects are only ever created; no route updates
// or deletes one.
type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Budget      int    `gorm:"not null" json:"budget"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
