package main

import (
	"log"

	"kenflash-backend/cache"
	"kenflash-backend/db"
	"kenflash-backend/routes"
	"kenflash-backend/sessions"
	"kenflash-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title KenFlash API
// @version 1.0
// @description Backend for the KenFlash creator platform
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := cache.InitRedis(); err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
		log.Println("Visitor sessions and live chat will not work correctly.")
	} else {
		sessions.Init(cache.Client)
	}

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Media upload will not work correctly.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
