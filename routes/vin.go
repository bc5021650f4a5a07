package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/vin"
	"github.com/mmanthe37/gear-ai-v1/middleware"
	"github.com/mmanthe37/gear-ai-v1/models"

	"github.com/gin-gonic/gin"
)

func VinRoutes(r *gin.Engine) {
	vinRoutes := r.Group("/vin")
	vinRoutes.Use(middleware.JWTAuth(), middleware.RequireFeature(models.FeatureVinScan))
	{
		vinRoutes.GET("/:vin", vin.DecodeVin)
	}
}
