package routes

import (
	"kenflash-backend/handlers/visitor"

	"github.com/gin-gonic/gin"
)

func VisitorRoutes(r *gin.Engine) {
	visitorRoutes := r.Group("/visitor")
	{
		visitorRoutes.GET("/:visitorId/session", visitor.GetSession)
		visitorRoutes.POST("/:visitorId/session", visitor.SubscribeVisitor)
		visitorRoutes.DELETE("/:visitorId/session", visitor.ClearSession)
		visitorRoutes.POST("/:visitorId/pending", visitor.SavePendingTransaction)
	}
}
