package models

import (
	"time"
)

type AdCampaignStatus string

const (
	AdCampaignPending  AdCampaignStatus = "PENDING"
	AdCampaignApproved AdCampaignStatus = "APPROVED"
	AdCampaignRejected AdCampaignStatus = "REJECTED"
)

// AdCampaign is a campaign request submitted by a business, reviewed by an
// admin before it runs on the platform.
type AdCampaign struct {
	ID           string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BusinessName string           `json:"businessName" gorm:"column:business_name" binding:"required"`
	Email        string           `json:"email" binding:"required,email"`
	Headline     string           `json:"headline" binding:"required"`
	CreativeURL  string           `json:"creativeUrl" gorm:"column:creative_url"`
	BudgetKES    int              `json:"budgetKes" gorm:"column:budget_kes"`
	Status       AdCampaignStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	SubmittedAt  time.Time        `json:"submittedAt" gorm:"column:submitted_at;default:CURRENT_TIMESTAMP"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	DeletedAt    *time.Time       `json:"deletedAt,omitempty" gorm:"index"`
}

func (AdCampaign) TableName() string {
	return "ad_campaigns"
}

// AdCampaignCreate model for submitting a campaign request
type AdCampaignCreate struct {
	BusinessName string `json:"businessName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Headline     string `json:"headline" binding:"required"`
	CreativeURL  string `json:"creativeUrl"`
	BudgetKES    int    `json:"budgetKes"`
}

// AdCampaignReview model for the admin decision
type AdCampaignReview struct {
	Status AdCampaignStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}
