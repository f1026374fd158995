package payments

import (
	"context"
	"fmt"
	"time"

	"kenflash-backend/db"
	"kenflash-backend/models"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"gorm.io/gorm/clause"
)

// sendReceipt is swapped out in tests.
var sendReceipt = utils.SendPaymentReceipt

// grantSubscription records a verified payment: one subscription row,
// expiry computed from the plan at write time, visitor session refreshed so
// the gate unblocks without a reload. The insert is idempotent on
// transaction_ref; re-verifying the same payment returns the row already
// granted for it instead of a duplicate.
func grantSubscription(ctx context.Context, email, planName, transactionRef, visitorID string) (*models.Subscription, error) {
	duration, err := models.PlanDuration(planName)
	if err != nil {
		return nil, err
	}

	sub := models.Subscription{
		Email:          email,
		Plan:           planName,
		ExpiryTime:     time.Now().Add(duration),
		TransactionRef: transactionRef,
		Status:         models.SubscriptionActive,
	}

	result := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_ref"}},
		DoNothing: true,
	}).Create(&sub)
	if result.Error != nil {
		return nil, fmt.Errorf("inserting subscription: %w", result.Error)
	}

	inserted := result.RowsAffected == 1
	if !inserted {
		if err := db.DB.First(&sub, "transaction_ref = ?", transactionRef).Error; err != nil {
			return nil, fmt.Errorf("loading existing subscription: %w", err)
		}
	}

	if visitorID != "" && sessions.Default != nil {
		session := sessions.VisitorSession{
			Email:              sub.Email,
			SubscriptionExpiry: sub.ExpiryTime,
		}
		if err := sessions.Default.Save(ctx, visitorID, session); err != nil {
			// the record store has the grant; the session catches up on the
			// next checkExistingSubscription
			utils.LogError(err, "Error refreshing the visitor session after a grant")
		}
	}

	if inserted {
		go sendReceipt(sub.Email, sub.Plan, sub.ExpiryTime)
	}

	return &sub, nil
}
