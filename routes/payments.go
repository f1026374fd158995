package routes

import (
	"net/http"
	"os"
	"strings"

	"kenflash-backend/handlers/payments"

	"github.com/gin-gonic/gin"
)

// verifyOriginAllowList restricts the verification endpoints to the known
// web clients. The initialize endpoint stays open like the rest of the API.
func verifyOriginAllowList() gin.HandlerFunc {
	allowed := strings.Split(os.Getenv("VERIFY_ALLOWED_ORIGINS"), ",")
	if len(allowed) == 1 && allowed[0] == "" {
		allowed = []string{"https://kenflash.com", "http://localhost:5173"}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		for _, a := range allowed {
			if strings.TrimSpace(a) == origin {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Origin not allowed"})
		c.Abort()
	}
}

func PaymentsRoutes(r *gin.Engine) {
	paymentRoutes := r.Group("/payments")
	{
		paymentRoutes.POST("/korapay/initialize", payments.InitializeKorapayCharge)

		verified := paymentRoutes.Group("")
		verified.Use(verifyOriginAllowList())
		{
			verified.POST("/korapay/verify", payments.VerifyKorapayPayment)
			verified.POST("/korapay/complete", payments.CompleteRedirectCheckout)
			verified.POST("/widget/verify", payments.VerifyWidgetPayment)
		}
	}
}
