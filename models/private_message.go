package models

import (
	"time"
)

const (
	MessageUnread = "UNREAD"
	MessageRead   = "READ"
)

// PrivateMessage is a chat message between two users (creator/admin chat).
type PrivateMessage struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID   string     `json:"senderId" gorm:"column:sender_id"`
	ReceiverID string     `json:"receiverId" gorm:"column:receiver_id"`
	Content    string     `json:"content" binding:"required"`
	Status     string     `json:"status" gorm:"default:UNREAD"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

// PrivateMessageCreate model for sending a message
type PrivateMessageCreate struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (PrivateMessage) TableName() string {
	return "private_messages"
}
