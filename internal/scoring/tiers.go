package scoring

import "github.com/servline/menuqa/internal/menu"

// Tier thresholds: a score at or above the threshold lands in that tier.
const (
	tierHighThreshold   = 0.80
	tierMediumThreshold = 0.60
	tierLowThreshold    = 0.40
)

// TierForScore maps a semantic confidence score to its tier.
func TierForScore(score float64) menu.Tier {
	switch {
	case score >= tierHighThreshold:
		return menu.TierHigh
	case score >= tierMediumThreshold:
		return menu.TierMedium
	case score >= tierLowThreshold:
		return menu.TierLow
	default:
		return menu.TierReject
	}
}

// ClassifyTiers writes SemanticTier and NeedsReview for each item.
// Unscored items go straight to reject. Everything below the high tier
// needs review. Re-classifying overwrites both fields.
func ClassifyTiers(items []*menu.Item) {
	for _, it := range items {
		if it.SemanticConfidence == nil {
			it.SemanticTier = menu.TierReject
			it.NeedsReview = true
			continue
		}
		tier := TierForScore(*it.SemanticConfidence)
		it.SemanticTier = tier
		it.NeedsReview = tier != menu.TierHigh
	}
}
