package maintenance

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ownedVehicle checks the vehicle in the path belongs to the caller.
// Maintenance ownership is always enforced through the vehicle row.
func ownedVehicle(c *gin.Context, userID interface{}) (*models.Vehicle, bool) {
	vehicleId := c.Param("vehicleId")
	if _, err := uuid.Parse(vehicleId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return nil, false
	}

	var vehicle models.Vehicle
	if err := db.DB.First(&vehicle, "id = ?", vehicleId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return nil, false
	}

	if vehicle.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to access this vehicle"})
		return nil, false
	}

	return &vehicle, true
}

// CreateMaintenanceRecord logs a maintenance event for a vehicle.
// @Summary Create a maintenance record
// @Description Log a maintenance event (routine, repair, modification, diagnostic, inspection) for one vehicle
// @Tags maintenance
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param record body models.MaintenanceRecord true "Maintenance record"
// @Security BearerAuth
// @Success 201 {object} models.MaintenanceRecord
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId}/maintenance [post]
func CreateMaintenanceRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	var record models.MaintenanceRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	record.ID = ""
	record.VehicleID = vehicle.ID
	record.UserID = vehicle.UserID

	if err := db.DB.Create(&record).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the maintenance record in CreateMaintenanceRecord")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the maintenance record"})
		return
	}

	utils.LogSuccessWithUser(userID, "Maintenance record created in CreateMaintenanceRecord")
	c.JSON(http.StatusCreated, record)
}

// GetMaintenanceRecords lists the maintenance history of a vehicle.
// @Summary List maintenance records
// @Description Return the maintenance history of one vehicle, most recent first
// @Tags maintenance
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Security BearerAuth
// @Success 200 {array} models.MaintenanceRecord
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId}/maintenance [get]
func GetMaintenanceRecords(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	var records []models.MaintenanceRecord
	if err := db.DB.Where("vehicle_id = ?", vehicle.ID).Order("date DESC").Find(&records).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching maintenance records in GetMaintenanceRecords")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching maintenance records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// UpdateMaintenanceRecord updates one maintenance record.
// @Summary Update a maintenance record
// @Description Update the fields of one maintenance record
// @Tags maintenance
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param recordId path string true "Maintenance record ID"
// @Param record body models.MaintenanceRecord true "Maintenance record fields"
// @Security BearerAuth
// @Success 200 {object} models.MaintenanceRecord
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Record not found"
// @Router /vehicles/{vehicleId}/maintenance/{recordId} [put]
func UpdateMaintenanceRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	recordId := c.Param("recordId")
	if _, err := uuid.Parse(recordId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var record models.MaintenanceRecord
	if err := db.DB.First(&record, "id = ? AND vehicle_id = ?", recordId, vehicle.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	var input models.MaintenanceRecord
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{
		"type":                 input.Type,
		"date":                 input.Date,
		"mileage":              input.Mileage,
		"title":                input.Title,
		"description":          input.Description,
		"cost":                 input.Cost,
		"labor_cost":           input.LaborCost,
		"parts_cost":           input.PartsCost,
		"shop_name":            input.ShopName,
		"shop_location":        input.ShopLocation,
		"technician_name":      input.TechnicianName,
		"next_service_date":    input.NextServiceDate,
		"next_service_mileage": input.NextServiceMileage,
		"warranty_covered":     input.WarrantyCovered,
	}

	if err := db.DB.Model(&record).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the maintenance record in UpdateMaintenanceRecord")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the maintenance record"})
		return
	}

	utils.LogSuccessWithUser(userID, "Maintenance record updated in UpdateMaintenanceRecord")
	c.JSON(http.StatusOK, record)
}

// DeleteMaintenanceRecord removes one maintenance record.
// @Summary Delete a maintenance record
// @Description Delete one maintenance record of a vehicle
// @Tags maintenance
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param recordId path string true "Maintenance record ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Maintenance record deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Record not found"
// @Router /vehicles/{vehicleId}/maintenance/{recordId} [delete]
func DeleteMaintenanceRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	recordId := c.Param("recordId")
	if _, err := uuid.Parse(recordId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	result := db.DB.Where("id = ? AND vehicle_id = ?", recordId, vehicle.ID).Delete(&models.MaintenanceRecord{})
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error deleting the maintenance record in DeleteMaintenanceRecord")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the maintenance record"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maintenance record not found"})
		return
	}

	utils.LogSuccessWithUser(userID, "Maintenance record deleted in DeleteMaintenanceRecord")
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted successfully"})
}
