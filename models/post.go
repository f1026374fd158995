package models

import (
	"time"
)

type MediaType string

const (
	MediaPhoto MediaType = "PHOTO"
	MediaVideo MediaType = "VIDEO"
)

// Post is a piece of content uploaded by a creator. Premium posts
// (IsFree = false) are only served to viewers with a current subscription.
type Post struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string     `json:"userId" gorm:"column:user_id"`
	Name      string     `json:"name" binding:"required"`
	MediaURL  string     `json:"mediaUrl" gorm:"column:media_url"`
	MediaType MediaType  `json:"mediaType" gorm:"column:media_type;type:varchar(10)"`
	IsFree    bool       `json:"isFree" gorm:"default:true"`
	Enable    bool       `json:"enable" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}

type PostModeration struct {
	Enable bool `json:"enable"`
}
