package stripe

import (
	"testing"

	"github.com/mmanthe37/gear-ai-v1/models"

	"github.com/stretchr/testify/assert"
)

func TestTierForPrice(t *testing.T) {
	assert.Equal(t, models.TierPro, TierForPrice(testProPrice))
	assert.Equal(t, models.TierPremium, TierForPrice("price_premium_month"))

	// Unknown price ids never block event processing.
	assert.Equal(t, models.TierFree, TierForPrice("price_unknown"))
	assert.Equal(t, models.TierFree, TierForPrice(""))
}

func TestPriceIDForTier(t *testing.T) {
	assert.Equal(t, testProPrice, PriceIDForTier(models.TierPro))
	assert.Equal(t, "", PriceIDForTier(models.TierFree))
	assert.Equal(t, "", PriceIDForTier(models.TierDealer))
}
