package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "ACTIVE"
)

// Subscription is one grant of timed access purchased by an email address.
// Rows are additive: one row per successful payment, never updated or
// purged. A row stops granting access once ExpiryTime passes.
// TransactionRef is unique so re-verifying the same payment cannot grant
// a second row.
type Subscription struct {
	ID             string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email          string             `json:"email" gorm:"index;not null"`
	Plan           string             `json:"plan" gorm:"not null"`
	ExpiryTime     time.Time          `json:"expiryTime" gorm:"column:expiry_time;not null"`
	TransactionRef string             `json:"transactionRef" gorm:"column:transaction_ref;uniqueIndex;not null"`
	Status         SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsCurrent reports whether the row still grants access at now.
func (s Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && s.ExpiryTime.After(now)
}
