package stripe

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSubscriptionStatus returns the user's effective tier and billing
// state from locally persisted rows. The webhook reconciler is the only
// writer of that state; this endpoint never calls Stripe.
// @Summary Current subscription status
// @Description Return the user's tier, subscription status, period end and trial information
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "tier, status, currentPeriodEnd, cancelAtPeriodEnd, trialEnd, stripeSubscriptionId"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /subscriptions/status [get]
func GetSubscriptionStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetSubscriptionStatus")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in GetSubscriptionStatus")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	status := user.SubscriptionStatus
	if status == "" {
		status = models.SubscriptionNone
	}

	resp := gin.H{
		"tier":             models.TierOrFree(user.Tier),
		"status":           status,
		"currentPeriodEnd": user.SubscriptionPeriodEnd,
	}

	// A user who never subscribed has no subscription row; that is the
	// free-tier default, not an error.
	var subscription models.Subscription
	err := db.DB.
		Where("user_id = ? AND status = ?", user.ID, models.SubscriptionActive).
		Order("created_at DESC").
		First(&subscription).Error
	if err == nil {
		resp["cancelAtPeriodEnd"] = subscription.CancelAtPeriodEnd
		resp["stripeSubscriptionId"] = subscription.StripeSubscriptionId
		resp["trialEnd"] = subscription.TrialEnd
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error fetching the subscription in GetSubscriptionStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscription status"})
		return
	}

	utils.LogSuccessWithUser(userID, "Subscription status fetched in GetSubscriptionStatus")
	c.JSON(http.StatusOK, resp)
}

// GetTrialStatus reports whether the user is in an active trial. Trial
// validity is recomputed from trial_end at read time: the stored status
// only changes on the next webhook event, so a row can still say
// trialing after the trial expired.
// @Summary Trial period status
// @Description Return whether the user is in a trial period and how many days remain
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "inTrial, daysRemaining"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions/trial [get]
func GetTrialStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetTrialStatus")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subscription models.Subscription
	err := db.DB.
		Where("user_id = ? AND status = ?", userID, models.SubscriptionTrialing).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"inTrial": false})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error fetching the trial subscription in GetTrialStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching trial status"})
		return
	}

	if subscription.TrialEnd == nil || subscription.TrialEnd.Before(time.Now()) {
		c.JSON(http.StatusOK, gin.H{"inTrial": false})
		return
	}

	daysRemaining := int(math.Ceil(time.Until(*subscription.TrialEnd).Hours() / 24))
	c.JSON(http.StatusOK, gin.H{
		"inTrial":       true,
		"daysRemaining": daysRemaining,
	})
}
