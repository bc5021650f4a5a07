package stripe

import (
	"os"

	"github.com/mmanthe37/gear-ai-v1/models"
)

var priceTierEnv = map[string]models.SubscriptionTier{
	"STRIPE_PRICE_PRO_MONTHLY":     models.TierPro,
	"STRIPE_PRICE_PRO_YEARLY":      models.TierPro,
	"STRIPE_PRICE_PREMIUM_MONTHLY": models.TierPremium,
	"STRIPE_PRICE_PREMIUM_YEARLY":  models.TierPremium,
}

var priceToTier map[string]models.SubscriptionTier

// LoadPriceTierMap reads the price-id-to-tier mapping from the
// environment. Called at startup and from tests after changing env.
func LoadPriceTierMap() {
	priceToTier = make(map[string]models.SubscriptionTier, len(priceTierEnv))
	for env, tier := range priceTierEnv {
		if id := os.Getenv(env); id != "" {
			priceToTier[id] = tier
		}
	}
}

// TierForPrice maps a Stripe price id to a tier. Unmapped price ids map
// to free so an unrelated price change never blocks event processing.
func TierForPrice(priceID string) models.SubscriptionTier {
	if priceToTier == nil {
		LoadPriceTierMap()
	}
	if tier, ok := priceToTier[priceID]; ok {
		return tier
	}
	return models.TierFree
}

// PriceIDForTier returns the configured monthly price id of a tier, if
// any. Used by the plans listing.
func PriceIDForTier(tier models.SubscriptionTier) string {
	if priceToTier == nil {
		LoadPriceTierMap()
	}
	switch tier {
	case models.TierPro:
		return os.Getenv("STRIPE_PRICE_PRO_MONTHLY")
	case models.TierPremium:
		return os.Getenv("STRIPE_PRICE_PREMIUM_MONTHLY")
	default:
		return ""
	}
}
