package models

import (
	"time"
)

// Message is a single direct-chat entry between two users. Messages are
// immutable once created and always displayed oldest first.
type Message struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	SenderID   uint   `gorm:"index;not null" json:"sender_id"`
	ReceiverID uint   `gorm:"index;not null" json:"receiver_id"`
	Content    string `gorm:"type:text;not null" json:"content"`

	// Set by GORM at insert time; the display order for a conversation.
	Timestamp time.Time `gorm:"index;autoCreateTime" json:"timestamp"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
