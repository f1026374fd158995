package models

import (
	"time"
)

type Role string

const (
	AdminRole   Role = "ADMIN"
	CreatorRole Role = "CREATOR"
	UserRole    Role = "USER"
)

// User is an authenticated account: admins, content creators and regular
// users. Viewers buying subscriptions are identified by email only and do
// not need an account.
type User struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	Password       string     `json:"password,omitempty" binding:"required,min=6"`
	UserName       string     `json:"username"`
	Role           Role       `json:"role" gorm:"type:varchar(20);default:'USER'"`
	Bio            string     `json:"bio"`
	ProfilePicture string     `json:"profilePicture"`
	Enable         bool       `json:"enable" gorm:"default:true"`
	IsApproved     bool       `json:"isApproved" gorm:"default:false"`
	MessageEnable  bool       `json:"messageEnable" gorm:"default:true"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// UserLogin model for the login request
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
