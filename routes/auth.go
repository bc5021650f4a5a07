package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/auth"
	"github.com/mmanthe37/gear-ai-v1/handlers/ping"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	pingHandler := ping.New()
	r.GET("/ping", pingHandler.HandlePing)
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
}
