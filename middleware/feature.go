package middleware

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"

	"github.com/gin-gonic/gin"
)

// RequireFeature rejects requests from users whose subscription tier
// does not grant the named feature. Must run after JWTAuth.
func RequireFeature(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		tier := models.TierOrFree(user.Tier)
		if !models.HasFeature(tier, feature) {
			resp := gin.H{
				"error":       "Your plan does not include this feature",
				"currentTier": tier,
			}
			if required, ok := models.MinimumTierFor(feature); ok {
				resp["tierRequired"] = required
			}
			c.JSON(http.StatusForbidden, resp)
			c.Abort()
			return
		}

		c.Next()
	}
}
