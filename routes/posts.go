package routes

import (
	"kenflash-backend/handlers/posts"
	"kenflash-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	postRoutes := r.Group("/posts")
	{
		postRoutes.GET("/", posts.GetAllPosts)
		postRoutes.POST("/", middleware.JWTAuth(), posts.CreatePost)
		postRoutes.DELETE("/:postId", middleware.JWTAuth(), posts.DeletePost)
		postRoutes.PATCH("/:postId/moderate", middleware.AdminAuth(), posts.ModeratePost)
	}
}
