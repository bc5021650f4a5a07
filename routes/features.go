package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/features"
	"github.com/mmanthe37/gear-ai-v1/middleware"

	"github.com/gin-gonic/gin"
)

func FeaturesRoutes(r *gin.Engine) {
	featureRoutes := r.Group("/features")
	featureRoutes.Use(middleware.JWTAuth())
	{
		featureRoutes.GET("/vehicle-limit", features.CheckVehicleLimit)
		featureRoutes.GET("/:feature/access", features.CheckFeatureAccess)
	}
}
