package routes

import (
	"kenflash-backend/handlers/messages"
	"kenflash-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PrivateMessagesRoutes(r *gin.Engine) {
	messageRoutes := r.Group("/private-messages")
	messageRoutes.Use(middleware.JWTAuth())
	{
		messageRoutes.POST("/", messages.CreatePrivateMessage)
		messageRoutes.GET("/:userId", messages.GetConversation)
		messageRoutes.GET("/:userId/stream", messages.StreamConversation)
	}
}
