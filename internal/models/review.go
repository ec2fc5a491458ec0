package models

import (
	"time"
)

// Review is feedback left for a freelancer about a project. There is no
// uniqueness constraint over (freelancer_id, project_id): the same author may
// review the same pair more than once.
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Rating  int    `gorm:"not null" json:"rating"` // 1-5

	FreelancerID uint `gorm:"index;not null" json:"freelancer_id"`
	ProjectID    uint `gorm:"index;not null" json:"project_id"`
	UserID       uint `gorm:"index;not null" json:"user_id"` // review author

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Author     *User    `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
