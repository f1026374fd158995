package visitor

import (
	"net/http"
	"time"

	"kenflash-backend/models"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func store(c *gin.Context) *sessions.Store {
	if sessions.Default == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session store unavailable"})
		return nil
	}
	return sessions.Default
}

func visitorID(c *gin.Context) (string, bool) {
	id := c.Param("visitorId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visitor ID"})
		return "", false
	}
	return id, true
}

// GetSession is the subscription gate read
// @Summary Read the visitor session
// @Description The subscription gate: reports whether this visitor is currently entitled to premium content. An expired session is cleared and reported as not subscribed.
// @Tags visitor
// @Produce json
// @Param visitorId path string true "Visitor identifier"
// @Success 200 {object} map[string]interface{} "isSubscribed: bool, email and subscriptionExpiry when subscribed"
// @Failure 400 {object} map[string]string "error: Invalid visitor ID"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /visitor/{visitorId}/session [get]
func GetSession(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		return
	}
	s := store(c)
	if s == nil {
		return
	}

	session, err := s.Load(c.Request.Context(), id)
	if err != nil {
		utils.LogError(err, "Error loading the visitor session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading session"})
		return
	}

	if session == nil {
		c.JSON(http.StatusOK, gin.H{"isSubscribed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isSubscribed":       true,
		"email":              session.Email,
		"subscriptionExpiry": session.SubscriptionExpiry,
	})
}

// SubscribeVisitorRequest model for caching an entitlement on a device
type SubscribeVisitorRequest struct {
	Email    string `json:"email" binding:"required,email"`
	PlanName string `json:"planName" binding:"required"`
}

// SubscribeVisitor caches an entitlement in the visitor session
// @Summary Subscribe a visitor session
// @Description Cache an entitlement on this device after a payment path completed. The subscription record store remains the source of truth; this only sets the cached belief so the gate unblocks immediately.
// @Tags visitor
// @Accept json
// @Produce json
// @Param visitorId path string true "Visitor identifier"
// @Param session body SubscribeVisitorRequest true "Subscriber email and plan"
// @Success 200 {object} map[string]interface{} "isSubscribed: true, subscriptionExpiry"
// @Failure 400 {object} map[string]string "error: Invalid input or unknown plan"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /visitor/{visitorId}/session [post]
func SubscribeVisitor(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		return
	}
	s := store(c)
	if s == nil {
		return
	}

	var req SubscribeVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	duration, err := models.PlanDuration(req.PlanName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := sessions.VisitorSession{
		Email:              req.Email,
		SubscriptionExpiry: time.Now().Add(duration),
	}
	if err := s.Save(c.Request.Context(), id, session); err != nil {
		utils.LogError(err, "Error saving the visitor session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isSubscribed":       true,
		"subscriptionExpiry": session.SubscriptionExpiry,
	})
}

// ClearSession removes the cached entitlement
// @Summary Clear the visitor session
// @Tags visitor
// @Produce json
// @Param visitorId path string true "Visitor identifier"
// @Success 200 {object} map[string]string "message: Session cleared"
// @Failure 400 {object} map[string]string "error: Invalid visitor ID"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /visitor/{visitorId}/session [delete]
func ClearSession(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		return
	}
	s := store(c)
	if s == nil {
		return
	}

	if err := s.Clear(c.Request.Context(), id); err != nil {
		utils.LogError(err, "Error clearing the visitor session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session cleared"})
}

// SavePendingTransaction stores the marker bridging a redirect checkout
// @Summary Store a pending transaction marker
// @Description Written right before navigating to a hosted checkout page. The marker is consumed exactly once when the redirect returns.
// @Tags visitor
// @Accept json
// @Produce json
// @Param visitorId path string true "Visitor identifier"
// @Param pending body sessions.PendingTransaction true "Pending transaction details"
// @Success 200 {object} map[string]string "message: Pending transaction stored"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /visitor/{visitorId}/pending [post]
func SavePendingTransaction(c *gin.Context) {
	id, ok := visitorID(c)
	if !ok {
		return
	}
	s := store(c)
	if s == nil {
		return
	}

	var pending sessions.PendingTransaction
	if err := c.ShouldBindJSON(&pending); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := s.SavePending(c.Request.Context(), id, pending); err != nil {
		utils.LogError(err, "Error saving the pending transaction marker")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving pending transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pending transaction stored"})
}
