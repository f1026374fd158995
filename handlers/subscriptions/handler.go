package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"kenflash-backend/db"
	"kenflash-backend/models"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HasActiveSubscription reports whether any subscription row for email is
// still current, and returns the one with the latest expiry when several
// are. Rows are additive so duplicates from racing purchases are fine here.
func HasActiveSubscription(email string) (*models.Subscription, bool, error) {
	var sub models.Subscription
	err := db.DB.
		Where("email = ? AND expiry_time > ?", email, time.Now()).
		Order("expiry_time DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &sub, true, nil
}

// CheckExistingSubscription looks up a current subscription for an email
// @Summary Check an existing subscription
// @Description Reconciliation path for a returning subscriber on a new device: returns whether any subscription row for the email is still current. When a visitorId is provided the found subscription is adopted into the visitor session.
// @Tags subscriptions
// @Produce json
// @Param email query string true "Subscriber email"
// @Param visitorId query string false "Visitor identifier to adopt the subscription into"
// @Success 200 {object} map[string]interface{} "subscribed: bool, subscription: best current row when subscribed"
// @Failure 400 {object} map[string]string "error: Invalid email"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /subscriptions/check [get]
func CheckExistingSubscription(c *gin.Context) {
	email := c.Query("email")
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	sub, found, err := HasActiveSubscription(email)
	if err != nil {
		utils.LogError(err, "Error checking existing subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking subscription"})
		return
	}

	if !found {
		c.JSON(http.StatusOK, gin.H{"subscribed": false})
		return
	}

	if visitorID := c.Query("visitorId"); visitorID != "" && sessions.Default != nil {
		session := sessions.VisitorSession{
			Email:              sub.Email,
			SubscriptionExpiry: sub.ExpiryTime,
		}
		if err := sessions.Default.Save(c.Request.Context(), visitorID, session); err != nil {
			utils.LogError(err, "Error adopting the subscription into the visitor session")
		}
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": true, "subscription": sub})
}

// GetAllSubscriptions lists subscription rows for admin payment review
// @Summary List all subscriptions
// @Description Return all subscription rows, newest first, for admin payment review
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /subscriptions [get]
func GetAllSubscriptions(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var subs []models.Subscription
	if err := db.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error listing subscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscriptions listed")
	c.JSON(http.StatusOK, subs)
}

// GetRevenue sums plan prices over all subscription rows
// @Summary Total revenue
// @Description Sum the plan price of every subscription row, in KES
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "totalKes: total revenue, count: number of subscriptions"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /subscriptions/revenue [get]
func GetRevenue(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var subs []models.Subscription
	if err := db.DB.Find(&subs).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error computing revenue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	total := 0
	for _, sub := range subs {
		if plan, err := models.PlanByName(sub.Plan); err == nil {
			total += plan.AmountKES
		}
	}

	utils.LogSuccessWithUser(userID, "Revenue computed")
	c.JSON(http.StatusOK, gin.H{"totalKes": total, "count": len(subs)})
}
