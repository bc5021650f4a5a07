package vehicles

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateVehicle registers a vehicle for the connected user, enforcing
// the tier's vehicle quota.
// @Summary Register a vehicle
// @Description Create a vehicle for the connected user. Denied with an upgrade target when the tier's vehicle quota is reached.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body models.Vehicle true "Vehicle information"
// @Security BearerAuth
// @Success 201 {object} models.Vehicle
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]interface{} "error: Vehicle limit reached, tierRequired: upgrade target"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /vehicles [post]
func CreateVehicle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateVehicle")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var count int64
	if err := db.DB.Model(&models.Vehicle{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error counting vehicles in CreateVehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting vehicles"})
		return
	}

	tier := models.TierOrFree(user.Tier)
	allowed, upgrade := models.CanAddVehicle(tier, int(count))
	if !allowed {
		resp := gin.H{"error": "Vehicle limit reached for your plan"}
		if upgrade != "" {
			resp["tierRequired"] = upgrade
		}
		c.JSON(http.StatusForbidden, resp)
		return
	}

	vehicle.ID = ""
	vehicle.UserID = user.ID
	vehicle.ProfileImage = ""

	if err := db.DB.Create(&vehicle).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the vehicle in CreateVehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the vehicle"})
		return
	}

	utils.LogSuccessWithUser(userID, "Vehicle created in CreateVehicle")
	c.JSON(http.StatusCreated, vehicle)
}

// GetUserVehicles lists the connected user's vehicles.
// @Summary List vehicles
// @Description Return all vehicles of the connected user
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Vehicle
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /vehicles [get]
func GetUserVehicles(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var vehicles []models.Vehicle
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching vehicles in GetUserVehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// ownedVehicle loads a vehicle and checks it belongs to the caller.
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

// GetVehicleByID returns one vehicle of the connected user.
// @Summary Vehicle details
// @Description Return the detailed information of one vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Security BearerAuth
// @Success 200 {object} models.Vehicle
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId} [get]
func GetVehicleByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates a vehicle of the connected user.
// @Summary Update a vehicle
// @Description Update the editable fields of one vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param vehicle body models.Vehicle true "Vehicle fields"
// @Security BearerAuth
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId} [put]
func UpdateVehicle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	var input models.Vehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{
		"vin":                  input.Vin,
		"year":                 input.Year,
		"make":                 input.Make,
		"model":                input.Model,
		"trim":                 input.Trim,
		"fuel_type":            input.FuelType,
		"transmission":         input.Transmission,
		"drivetrain":           input.Drivetrain,
		"body_type":            input.BodyType,
		"color":                input.Color,
		"license_plate":        input.LicensePlate,
		"current_mileage":      input.CurrentMileage,
		"purchase_date":        input.PurchaseDate,
		"purchase_price":       input.PurchasePrice,
		"current_market_value": input.CurrentMarketValue,
	}

	if err := db.DB.Model(vehicle).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the vehicle in UpdateVehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the vehicle"})
		return
	}

	utils.LogSuccessWithUser(userID, "Vehicle updated in UpdateVehicle")
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle and its maintenance records.
// @Summary Delete a vehicle
// @Description Delete one vehicle of the connected user and its maintenance records
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Vehicle deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId} [delete]
func DeleteVehicle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	if err := db.DB.Where("vehicle_id = ?", vehicle.ID).Delete(&models.MaintenanceRecord{}).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting maintenance records in DeleteVehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the vehicle"})
		return
	}

	if err := db.DB.Delete(vehicle).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting the vehicle in DeleteVehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the vehicle"})
		return
	}

	utils.LogSuccessWithUser(userID, "Vehicle deleted in DeleteVehicle")
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}

// UploadVehicleImage sets the vehicle's profile image.
// @Summary Upload a vehicle image
// @Description Upload a photo for one vehicle and store its URL
// @Tags vehicles
// @Accept multipart/form-data
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param image formData file true "Image file"
// @Security BearerAuth
// @Success 200 {object} map[string]string "url: image URL"
// @Failure 400 {object} map[string]string "error: Invalid file"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized"
// @Failure 404 {object} map[string]string "error: Vehicle not found"
// @Router /vehicles/{vehicleId}/image [post]
func UploadVehicleImage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vehicle, ok := ownedVehicle(c, userID)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}

	url, err := utils.UploadVehicleImage(file)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error uploading the image in UploadVehicleImage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Model(vehicle).Update("profile_image", url).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error saving the image URL in UploadVehicleImage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving the image URL"})
		return
	}

	utils.LogSuccessWithUser(userID, "Vehicle image uploaded in UploadVehicleImage")
	c.JSON(http.StatusOK, gin.H{"url": url})
}
