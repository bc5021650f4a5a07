package models

import "fmt"

// SubscriptionTier is a named subscription level controlling feature
// access and vehicle quota.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPro     SubscriptionTier = "pro"
	TierPremium SubscriptionTier = "premium"
	TierDealer  SubscriptionTier = "dealer"
)

// Feature names used in the tier catalog and by the feature gate.
const (
	FeatureVinScan           = "vin_scan"
	FeatureAIManualChat      = "ai_manual_chat"
	FeatureDiagnostics       = "diagnostics"
	FeatureDamageDetection   = "damage_detection"
	FeatureValuationTracking = "valuation_tracking"
)

// UnlimitedVehicles is the vehicle limit of tiers without a quota.
const UnlimitedVehicles = -1

type TierInfo struct {
	Name              SubscriptionTier `json:"name"`
	DisplayName       string           `json:"displayName"`
	MonthlyPriceCents int64            `json:"monthlyPriceCents"`
	Features          map[string]bool  `json:"features"`
	MaxVehicles       int              `json:"maxVehicles"`
}

// TierOrder lists the tiers in ascending rank order. Feature flags are
// monotonic over this order: everything granted at a tier stays granted
// at every higher tier.
var TierOrder = []SubscriptionTier{TierFree, TierPro, TierPremium, TierDealer}

// tierCatalog is built once and never mutated at runtime.
var tierCatalog = map[SubscriptionTier]TierInfo{
	TierFree: {
		Name:              TierFree,
		DisplayName:       "Free",
		MonthlyPriceCents: 0,
		Features: map[string]bool{
			FeatureVinScan: true,
		},
		MaxVehicles: 1,
	},
	TierPro: {
		Name:              TierPro,
		DisplayName:       "Pro",
		MonthlyPriceCents: 999,
		Features: map[string]bool{
			FeatureVinScan:      true,
			FeatureAIManualChat: true,
			FeatureDiagnostics:  true,
		},
		MaxVehicles: 3,
	},
	TierPremium: {
		Name:              TierPremium,
		DisplayName:       "Premium",
		MonthlyPriceCents: 1999,
		Features: map[string]bool{
			FeatureVinScan:           true,
			FeatureAIManualChat:      true,
			FeatureDiagnostics:       true,
			FeatureDamageDetection:   true,
			FeatureValuationTracking: true,
		},
		MaxVehicles: 10,
	},
	TierDealer: {
		Name:              TierDealer,
		DisplayName:       "Dealer",
		MonthlyPriceCents: 4999,
		Features: map[string]bool{
			FeatureVinScan:           true,
			FeatureAIManualChat:      true,
			FeatureDiagnostics:       true,
			FeatureDamageDetection:   true,
			FeatureValuationTracking: true,
		},
		MaxVehicles: UnlimitedVehicles,
	},
}

// TierInfoFor returns the catalog entry of a tier. The catalog is total
// over the enum; an unknown tier is a programming error.
func TierInfoFor(tier SubscriptionTier) TierInfo {
	info, ok := tierCatalog[tier]
	if !ok {
		panic(fmt.Sprintf("unknown subscription tier: %q", tier))
	}
	return info
}

// TierOrFree maps any value read from storage to a catalog tier,
// defaulting unknown or empty values to free.
func TierOrFree(tier SubscriptionTier) SubscriptionTier {
	if _, ok := tierCatalog[tier]; ok {
		return tier
	}
	return TierFree
}

// HasFeature reports whether a tier grants a feature. Unknown feature
// names are denied.
func HasFeature(tier SubscriptionTier, feature string) bool {
	return TierInfoFor(tier).Features[feature]
}

// MinimumTierFor returns the lowest-ranked tier granting a feature.
// ok is false when no tier grants it.
func MinimumTierFor(feature string) (SubscriptionTier, bool) {
	for _, tier := range TierOrder {
		if tierCatalog[tier].Features[feature] {
			return tier, true
		}
	}
	return "", false
}

// VehicleLimit returns the vehicle quota of a tier, or
// UnlimitedVehicles.
func VehicleLimit(tier SubscriptionTier) int {
	return TierInfoFor(tier).MaxVehicles
}

// CanAddVehicle reports whether a user on the given tier may register
// one more vehicle. When denied, upgrade names the lowest-ranked tier
// whose quota admits the extra vehicle; it is empty if no tier does.
func CanAddVehicle(tier SubscriptionTier, currentCount int) (allowed bool, upgrade SubscriptionTier) {
	limit := VehicleLimit(tier)
	if limit == UnlimitedVehicles || currentCount < limit {
		return true, ""
	}
	for _, candidate := range TierOrder {
		candidateLimit := tierCatalog[candidate].MaxVehicles
		if candidateLimit == UnlimitedVehicles || currentCount < candidateLimit {
			return false, candidate
		}
	}
	return false, ""
}
