package payments

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"kenflash-backend/models"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
)

const supportMessage = "Your payment was received but we could not record your subscription. Please contact support with your transaction reference."

// VerifyPaymentRequest model for verifying a redirect checkout
type VerifyPaymentRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	PlanName      string `json:"planName" binding:"required"`
	VisitorID     string `json:"visitorId"`
}

// VerifyKorapayPayment verifies a redirect checkout against Korapay and grants the subscription
// @Summary Verify a Korapay payment
// @Description Re-check the transaction with Korapay (status, email, reference and amount must all match) and grant the subscription. This is the only path that grants entitlement; URL parameters from the redirect are never trusted.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body VerifyPaymentRequest true "Payment information"
// @Success 200 {object} map[string]interface{} "success: true, message: Subscription activated"
// @Failure 400 {object} map[string]interface{} "success: false, error: Missing required fields or unknown plan"
// @Failure 402 {object} map[string]interface{} "success: false, error: Payment not confirmed"
// @Failure 500 {object} map[string]interface{} "success: false, error: Provider error or lost write"
// @Router /payments/korapay/verify [post]
func VerifyKorapayPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: " + err.Error()})
		return
	}

	verifyAndGrant(c, req.TransactionID, req.Email, req.PlanName, req.VisitorID)
}

// CompleteRedirectRequest model for finishing a redirect round-trip
type CompleteRedirectRequest struct {
	VisitorID string `json:"visitorId" binding:"required"`
}

// CompleteRedirectCheckout consumes the pending-transaction marker and verifies the payment
// @Summary Complete a redirect checkout
// @Description Called when the visitor returns from the hosted checkout page. Consumes the pending-transaction marker stored at initialization (exactly once, whatever the outcome) and verifies the payment it describes. Redirect URL parameters are ignored for entitlement.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CompleteRedirectRequest true "Visitor identifier"
// @Success 200 {object} map[string]interface{} "success: true, message: Subscription activated"
// @Failure 400 {object} map[string]interface{} "success: false, error: No pending payment or missing details"
// @Failure 402 {object} map[string]interface{} "success: false, error: Payment not confirmed"
// @Failure 500 {object} map[string]interface{} "success: false, error: Provider error or lost write"
// @Router /payments/korapay/complete [post]
func CompleteRedirectCheckout(c *gin.Context) {
	var req CompleteRedirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: " + err.Error()})
		return
	}

	if sessions.Default == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Session store unavailable"})
		return
	}

	pending, err := sessions.Default.TakePending(c.Request.Context(), req.VisitorID)
	if err != nil {
		if errors.Is(err, sessions.ErrNoPendingTransaction) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No pending payment found for this visitor"})
			return
		}
		utils.LogError(err, "Error taking the pending transaction marker")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error reading the pending payment"})
		return
	}

	// the marker is consumed either way; incomplete details stop the flow
	// before any provider call
	if pending.Email == "" || pending.PlanName == "" || pending.TransactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing payment details"})
		return
	}

	verifyAndGrant(c, pending.TransactionID, pending.Email, pending.PlanName, req.VisitorID)
}

// verifyAndGrant runs the server-side verification: the transaction list is
// queried with the merchant reference and a match requires success status,
// the same customer email, the same payment reference and the exact plan
// amount in minor units.
func verifyAndGrant(c *gin.Context, transactionID, email, planName, visitorID string) {
	amountMinor, err := models.PlanAmountMinor(planName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	secretKey := os.Getenv("KORAPAY_SECRET_KEY")
	if secretKey == "" {
		utils.LogError(nil, "KORAPAY_SECRET_KEY is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Payment provider not configured"})
		return
	}

	client := NewKorapayClient(secretKey)
	transactions, err := client.ListTransactions(c.Request.Context(), transactionID)
	if err != nil {
		utils.LogError(err, "Error listing Korapay transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error checking the payment with the provider"})
		return
	}

	match := findKorapayMatch(transactions, transactionID, email, amountMinor)
	if match == nil {
		utils.LogError(nil, "No matching successful Korapay transaction for "+transactionID)
		c.JSON(http.StatusPaymentRequired, gin.H{"success": false, "error": "Payment not confirmed"})
		return
	}

	transactionRef := match.Reference
	if transactionRef == "" {
		transactionRef = transactionID
	}

	sub, err := grantSubscription(c.Request.Context(), email, planName, transactionRef, visitorID)
	if err != nil {
		// lost-write class: the provider confirmed the payment but the grant
		// failed; there is no automatic reconciliation
		utils.LogError(err, "Payment verified but the subscription insert failed for "+transactionID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": supportMessage})
		return
	}

	utils.LogSuccess("Subscription granted to " + email + " until " + sub.ExpiryTime.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription activated"})
}

func findKorapayMatch(transactions []KorapayTransaction, transactionID, email string, amountMinor int) *KorapayTransaction {
	for i := range transactions {
		t := &transactions[i]
		if t.Status == "success" &&
			strings.EqualFold(t.Customer.Email, email) &&
			t.PaymentReference == transactionID &&
			t.Amount == amountMinor {
			return t
		}
	}
	return nil
}
