package models

import (
	"time"
)

// User is an account on the marketplace. IsFreelancer marks accounts that
// offer work; nothing stops a client account from being reviewed, the flag
// only describes how the account presented itself at registration.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email    string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`

	Password     string `gorm:"not null" json:"-"`
	IsFreelancer bool   `gorm:"default:false" json:"is_freelancer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []Project `gorm:"foreignKey:UserID" json:"projects,omitempty"`

	// Reviews received as the reviewed freelancer, distinct from the ones
	// this user wrote (Review.UserID).
	ReviewsReceived []Review `gorm:"foreignKey:FreelancerID" json:"reviews_received,omitempty"`

	SentMessages     []Message `gorm:"foreignKey:SenderID" json:"sent_messages,omitempty"`
	ReceivedMessages []Message `gorm:"foreignKey:ReceiverID" json:"received_messages,omitempty"`
}
