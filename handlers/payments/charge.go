package payments

import (
	"net/http"
	"os"

	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
)

// InitializeChargeRequest model for starting a redirect checkout
type InitializeChargeRequest struct {
	Email         string `json:"email" binding:"required,email"`
	PlanName      string `json:"planName" binding:"required"`
	Amount        int    `json:"amount" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	VisitorID     string `json:"visitorId"`
}

// InitializeKorapayCharge creates a Korapay hosted checkout for a plan purchase
// @Summary Initialize a Korapay charge
// @Description Create a Korapay hosted checkout for a plan purchase. Pure signed-request proxy: the secret key stays server-side and no database write happens here. When a visitorId is provided the pending-transaction marker is stored so the redirect return can be completed later.
// @Tags payments
// @Accept json
// @Produce json
// @Param charge body InitializeChargeRequest true "Charge information"
// @Success 200 {object} map[string]interface{} "success: true, checkoutUrl: hosted checkout URL, korapayReference: provider reference"
// @Failure 400 {object} map[string]interface{} "success: false, error: Missing required fields"
// @Failure 500 {object} map[string]interface{} "success: false, error: Provider or configuration error"
// @Router /payments/korapay/initialize [post]
func InitializeKorapayCharge(c *gin.Context) {
	var req InitializeChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields: " + err.Error()})
		return
	}

	secretKey := os.Getenv("KORAPAY_SECRET_KEY")
	if secretKey == "" {
		utils.LogError(nil, "KORAPAY_SECRET_KEY is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Payment provider not configured"})
		return
	}

	redirectURL := os.Getenv("CHECKOUT_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "https://kenflash.com/payment/callback"
	}

	client := NewKorapayClient(secretKey)
	charge, err := client.InitializeCharge(c.Request.Context(), KorapayChargeRequest{
		Reference:   req.TransactionID,
		Amount:      req.Amount,
		Currency:    "KES",
		Narration:   req.PlanName + " subscription",
		RedirectURL: redirectURL,
		Customer:    KorapayCustomer{Email: req.Email},
		Metadata: map[string]string{
			"plan_name": req.PlanName,
			"email":     req.Email,
		},
	})
	if err != nil {
		utils.LogError(err, "Error initializing the Korapay charge")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error initializing the charge"})
		return
	}

	if req.VisitorID != "" && sessions.Default != nil {
		pending := sessions.PendingTransaction{
			Email:         req.Email,
			PlanName:      req.PlanName,
			TransactionID: req.TransactionID,
		}
		if err := sessions.Default.SavePending(c.Request.Context(), req.VisitorID, pending); err != nil {
			utils.LogError(err, "Error storing the pending transaction marker")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error preparing the checkout"})
			return
		}
	}

	utils.LogSuccess("Korapay charge initialized for " + req.Email)
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"checkoutUrl":      charge.CheckoutURL,
		"korapayReference": charge.Reference,
	})
}
