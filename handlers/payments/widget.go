package payments

import (
	"net/http"
	"os"
	"strings"

	"kenflash-backend/models"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
)

// WidgetVerifyRequest model for verifying a widget checkout
type WidgetVerifyRequest struct {
	Reference string `json:"reference" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	PlanName  string `json:"planName" binding:"required"`
	VisitorID string `json:"visitorId"`
}

// VerifyWidgetPayment verifies a widget checkout against Paystack and grants the subscription
// @Summary Verify a widget payment
// @Description Verify the reference returned by the embedded payment widget against Paystack, then grant through the same path as the redirect flow. The widget success callback alone never grants entitlement.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body WidgetVerifyRequest true "Widget payment information"
// @Success 200 {object} map[string]interface{} "success: true, message: Subscription activated"
// @Failure 400 {object} map[string]interface{} "success: false, error: Missing required fields or unknown plan"
// @Failure 402 {object} map[string]interface{} "success: false, error: Payment not confirmed"
// @Failure 500 {object} map[string]interface{} "success: false, error: Provider error or lost write"
// @Router /payments/widget/verify [post]
func VerifyWidgetPayment(c *gin.Context) {
	var req WidgetVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: " + err.Error()})
		return
	}

	amountMinor, err := models.PlanAmountMinor(req.PlanName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	secretKey := os.Getenv("PAYSTACK_SECRET_KEY")
	if secretKey == "" {
		utils.LogError(nil, "PAYSTACK_SECRET_KEY is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Payment provider not configured"})
		return
	}

	client := NewPaystackClient(secretKey)
	transaction, err := client.VerifyTransaction(c.Request.Context(), req.Reference)
	if err != nil {
		utils.LogError(err, "Error verifying the Paystack transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error checking the payment with the provider"})
		return
	}

	if transaction.Status != "success" ||
		!strings.EqualFold(transaction.Customer.Email, req.Email) ||
		transaction.Amount != amountMinor ||
		transaction.Currency != "KES" {
		utils.LogError(nil, "Paystack transaction does not match the purchase: "+req.Reference)
		c.JSON(http.StatusPaymentRequired, gin.H{"success": false, "error": "Payment not confirmed"})
		return
	}

	sub, err := grantSubscription(c.Request.Context(), req.Email, req.PlanName, req.Reference, req.VisitorID)
	if err != nil {
		utils.LogError(err, "Payment verified but the subscription insert failed for "+req.Reference)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": supportMessage})
		return
	}

	utils.LogSuccess("Subscription granted to " + req.Email + " until " + sub.ExpiryTime.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription activated"})
}
