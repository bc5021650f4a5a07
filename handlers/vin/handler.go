package vin

import (
	"net/http"
	"strings"

	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
)

// DecodeVin godoc
// @Summary Decode a VIN
// @Description Decode a 17-character VIN through the NHTSA vPIC database
// @Tags vin
// @Param vin path string true "VIN"
// @Security BearerAuth
// @Success 200 {object} utils.VinDecodeResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /vin/{vin} [get]
func DecodeVin(c *gin.Context) {
	vinParam := strings.ToUpper(strings.TrimSpace(c.Param("vin")))
	if !utils.ValidateVin(vinParam) {
		utils.LogError(nil, "Invalid VIN in DecodeVin")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid VIN: expected 17 characters without I, O or Q"})
		return
	}

	result, err := utils.DecodeVin(vinParam)
	if err != nil {
		utils.LogError(err, "Error decoding the VIN in DecodeVin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding the VIN"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		userID = "0"
	}
	utils.LogSuccessWithUser(userID, "VIN decoded successfully in DecodeVin")
	c.JSON(http.StatusOK, result)
}
