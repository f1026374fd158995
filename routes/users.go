package routes

import (
	"kenflash-backend/handlers/users"
	"kenflash-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/me", users.GetMe)
		userRoutes.PUT("/me/picture", users.UpdateProfilePicture)
		userRoutes.GET("/", middleware.AdminAuth(), users.GetAllUsers)
		userRoutes.PATCH("/:userId/approve", middleware.AdminAuth(), users.ApproveCreator)
	}
}
