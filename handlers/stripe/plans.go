package stripe

import (
	"net/http"

	"github.com/mmanthe37/gear-ai-v1/models"

	"github.com/gin-gonic/gin"
)

type planEntry struct {
	models.TierInfo
	PriceId string `json:"priceId,omitempty"`
}

// GetPlans lists the subscription tiers in rank order, with the
// configured Stripe price ids for the paid ones.
// @Summary List subscription plans
// @Description Return the tier catalog (features, vehicle limits, prices) in ascending rank order
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 200 {array} planEntry
// @Router /subscriptions/plans [get]
func GetPlans(c *gin.Context) {
	plans := make([]planEntry, 0, len(models.TierOrder))
	for _, tier := range models.TierOrder {
		plans = append(plans, planEntry{
			TierInfo: models.TierInfoFor(tier),
			PriceId:  PriceIDForTier(tier),
		})
	}
	c.JSON(http.StatusOK, plans)
}
