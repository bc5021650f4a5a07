package features

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
)

// CheckFeatureAccess reports whether the user's tier grants a feature,
// and if not, which tier would.
// @Summary Check feature access
// @Description Return whether the connected user's tier grants the named feature
// @Tags features
// @Accept json
// @Produce json
// @Param feature path string true "Feature name (vin_scan, ai_manual_chat, diagnostics, damage_detection, valuation_tracking)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "hasAccess, currentTier, tierRequired"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /features/{feature}/access [get]
func CheckFeatureAccess(c *gin.Context) {
	feature := c.Param("feature")

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CheckFeatureAccess")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tier := models.TierOrFree(user.Tier)
	hasAccess := models.HasFeature(tier, feature)

	resp := gin.H{
		"hasAccess":   hasAccess,
		"currentTier": tier,
	}
	if !hasAccess {
		if required, ok := models.MinimumTierFor(feature); ok {
			resp["tierRequired"] = required
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CheckVehicleLimit reports whether the user can register one more
// vehicle under their tier's quota.
// @Summary Check the vehicle quota
// @Description Return whether the connected user can add another vehicle, their limit and the upgrade tier if not
// @Tags features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "canAdd, limit, tierRequired"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /features/vehicle-limit [get]
func CheckVehicleLimit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CheckVehicleLimit")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var count int64
	if err := db.DB.Model(&models.Vehicle{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error counting vehicles in CheckVehicleLimit")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting vehicles"})
		return
	}

	tier := models.TierOrFree(user.Tier)
	allowed, upgrade := models.CanAddVehicle(tier, int(count))

	resp := gin.H{
		"canAdd": allowed,
	}
	if limit := models.VehicleLimit(tier); limit == models.UnlimitedVehicles {
		resp["limit"] = "unlimited"
	} else {
		resp["limit"] = limit
	}
	if !allowed && upgrade != "" {
		resp["tierRequired"] = upgrade
	}

	c.JSON(http.StatusOK, resp)
}
