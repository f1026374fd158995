package routes

import (
	"kenflash-backend/handlers/ads"
	"kenflash-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdsRoutes(r *gin.Engine) {
	adRoutes := r.Group("/ads")
	{
		adRoutes.POST("/", ads.CreateAdCampaign)
		adRoutes.GET("/", middleware.AdminAuth(), ads.GetAllAdCampaigns)
		adRoutes.PATCH("/:campaignId", middleware.AdminAuth(), ads.ReviewAdCampaign)
	}
}
