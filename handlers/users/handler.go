package users

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
)

// GetAllUsers lists every account, most recent first. Admin only.
// @Summary List all users
// @Description Return every user account with tier and subscription status (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.LogError(err, "Error fetching users in GetAllUsers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetCurrentUser returns the connected user's profile.
// @Summary Current user profile
// @Description Return the connected user's profile, tier and subscription status
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetCurrentUser")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// UpdateCurrentUser updates the connected user's profile fields. Tier
// and subscription status are reconciler-owned and ignored here.
// @Summary Update the current user
// @Description Update the connected user's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [put]
func UpdateCurrentUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in UpdateCurrentUser")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := db.DB.Model(&user).Update("user_name", input.UserName).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the user in UpdateCurrentUser")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the profile"})
		return
	}

	user.Password = ""
	utils.LogSuccessWithUser(userID, "User updated in UpdateCurrentUser")
	c.JSON(http.StatusOK, user)
}
