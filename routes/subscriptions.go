package routes

import (
	"kenflash-backend/handlers/subscriptions"
	"kenflash-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	{
		subscriptionRoutes.GET("/check", subscriptions.CheckExistingSubscription)
		subscriptionRoutes.GET("/", middleware.AdminAuth(), subscriptions.GetAllSubscriptions)
		subscriptionRoutes.GET("/revenue", middleware.AdminAuth(), subscriptions.GetRevenue)
	}
}
