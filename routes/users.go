package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/users"
	"github.com/mmanthe37/gear-ai-v1/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	userRoutes := r.Group("/users")
	userRoutes.Use(middleware.JWTAuth())
	{
		userRoutes.GET("/me", users.GetCurrentUser)
		userRoutes.PUT("/me", users.UpdateCurrentUser)
		userRoutes.GET("", middleware.AdminAuth(), users.GetAllUsers)
	}
}
