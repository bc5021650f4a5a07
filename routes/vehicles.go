package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/maintenance"
	"github.com/mmanthe37/gear-ai-v1/handlers/vehicles"
	"github.com/mmanthe37/gear-ai-v1/middleware"

	"github.com/gin-gonic/gin"
)

func VehiclesRoutes(r *gin.Engine) {
	vehicleRoutes := r.Group("/vehicles")
	vehicleRoutes.Use(middleware.JWTAuth())
	{
		vehicleRoutes.POST("", vehicles.CreateVehicle)
		vehicleRoutes.GET("", vehicles.GetUserVehicles)
		vehicleRoutes.GET("/:vehicleId", vehicles.GetVehicleByID)
		vehicleRoutes.PUT("/:vehicleId", vehicles.UpdateVehicle)
		vehicleRoutes.DELETE("/:vehicleId", vehicles.DeleteVehicle)
		vehicleRoutes.POST("/:vehicleId/image", vehicles.UploadVehicleImage)

		vehicleRoutes.POST("/:vehicleId/maintenance", maintenance.CreateMaintenanceRecord)
		vehicleRoutes.GET("/:vehicleId/maintenance", maintenance.GetMaintenanceRecords)
		vehicleRoutes.PUT("/:vehicleId/maintenance/:recordId", maintenance.UpdateMaintenanceRecord)
		vehicleRoutes.DELETE("/:vehicleId/maintenance/:recordId", maintenance.DeleteMaintenanceRecord)
	}
}
