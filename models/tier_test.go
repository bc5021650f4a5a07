package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierCatalog_FeaturesAreMonotonic(t *testing.T) {
	allFeatures := []string{
		FeatureVinScan,
		FeatureAIManualChat,
		FeatureDiagnostics,
		FeatureDamageDetection,
		FeatureValuationTracking,
	}

	for i := 1; i < len(TierOrder); i++ {
		lower := TierOrder[i-1]
		higher := TierOrder[i]
		for _, feature := range allFeatures {
			if HasFeature(lower, feature) {
				assert.True(t, HasFeature(higher, feature),
					"feature %s granted at %s but not at %s", feature, lower, higher)
			}
		}
	}
}

func TestTierCatalog_VehicleLimits(t *testing.T) {
	assert.Equal(t, 1, VehicleLimit(TierFree))
	assert.Equal(t, 3, VehicleLimit(TierPro))
	assert.Equal(t, 10, VehicleLimit(TierPremium))
	assert.Equal(t, UnlimitedVehicles, VehicleLimit(TierDealer))
}

func TestTierCatalog_FreeGrantsOnlyVinScan(t *testing.T) {
	assert.True(t, HasFeature(TierFree, FeatureVinScan))
	assert.False(t, HasFeature(TierFree, FeatureAIManualChat))
	assert.False(t, HasFeature(TierFree, FeatureDiagnostics))
	assert.False(t, HasFeature(TierFree, FeatureDamageDetection))
	assert.False(t, HasFeature(TierFree, FeatureValuationTracking))
}

func TestHasFeature_UnknownFeatureIsDenied(t *testing.T) {
	for _, tier := range TierOrder {
		assert.False(t, HasFeature(tier, "teleportation"))
	}
}

func TestTierInfoFor_PanicsOnUnknownTier(t *testing.T) {
	assert.Panics(t, func() {
		TierInfoFor(SubscriptionTier("platinum"))
	})
}

func TestTierOrFree_NormalizesUnknownValues(t *testing.T) {
	assert.Equal(t, TierFree, TierOrFree(""))
	assert.Equal(t, TierFree, TierOrFree(SubscriptionTier("platinum")))
	assert.Equal(t, TierPro, TierOrFree(TierPro))
	assert.Equal(t, TierDealer, TierOrFree(TierDealer))
}

func TestMinimumTierFor(t *testing.T) {
	tier, ok := MinimumTierFor(FeatureVinScan)
	assert.True(t, ok)
	assert.Equal(t, TierFree, tier)

	tier, ok = MinimumTierFor(FeatureAIManualChat)
	assert.True(t, ok)
	assert.Equal(t, TierPro, tier)

	tier, ok = MinimumTierFor(FeatureDamageDetection)
	assert.True(t, ok)
	assert.Equal(t, TierPremium, tier)

	_, ok = MinimumTierFor("teleportation")
	assert.False(t, ok)
}

func TestCanAddVehicle_FreeAtLimitSuggestsPro(t *testing.T) {
	allowed, upgrade := CanAddVehicle(TierFree, 0)
	assert.True(t, allowed)
	assert.Equal(t, SubscriptionTier(""), upgrade)

	allowed, upgrade = CanAddVehicle(TierFree, 1)
	assert.False(t, allowed)
	assert.Equal(t, TierPro, upgrade)
}

func TestCanAddVehicle_ProAtLimitSuggestsPremium(t *testing.T) {
	allowed, upgrade := CanAddVehicle(TierPro, 3)
	assert.False(t, allowed)
	assert.Equal(t, TierPremium, upgrade)
}

func TestCanAddVehicle_PremiumAtLimitSuggestsDealer(t *testing.T) {
	allowed, upgrade := CanAddVehicle(TierPremium, 10)
	assert.False(t, allowed)
	assert.Equal(t, TierDealer, upgrade)
}

func TestCanAddVehicle_DealerIsUnlimited(t *testing.T) {
	allowed, upgrade := CanAddVehicle(TierDealer, 10000)
	assert.True(t, allowed)
	assert.Equal(t, SubscriptionTier(""), upgrade)
}
