package repair

import (
	"testing"

	"github.com/servline/menuqa/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCorrector returns canned fixes keyed by the exact input name.
type fakeCorrector struct {
	fixes map[string]string
}

func (f fakeCorrector) Correct(name string) (string, bool) {
	fix, ok := f.fixes[name]
	return fix, ok
}

func lowTierItem(name string, nameScore float64) *menu.Item {
	return &menu.Item{
		Name:         name,
		SemanticTier: menu.TierLow,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore:     1.0,
			NameQualityScore: nameScore,
			PriceScore:       1.0,
			VariantScore:     1.0,
			FlagPenaltyScore: 1.0,
		},
	}
}

func recTypes(recs []menu.Recommendation) []menu.RecommendationType {
	types := make([]menu.RecommendationType, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	return types
}

func TestGenerate_HighTierGetsEmptyList(t *testing.T) {
	it := &menu.Item{Name: "Margherita Pizza", SemanticTier: menu.TierHigh}
	(&Generator{}).Generate([]*menu.Item{it})

	require.NotNil(t, it.RepairRecommendations)
	assert.Empty(t, it.RepairRecommendations)
}

func TestGenerate_UnscoredItemFiresNothing(t *testing.T) {
	// Without an audit trail every signal reads as perfect
	it := &menu.Item{Name: "Mystery Item"}
	(&Generator{}).Generate([]*menu.Item{it})

	require.NotNil(t, it.RepairRecommendations)
	assert.Empty(t, it.RepairRecommendations)
}

func TestGenerate_PriorityFollowsTier(t *testing.T) {
	details := &menu.ConfidenceDetails{
		GrammarScore: 1, NameQualityScore: 1, PriceScore: 0.3,
		VariantScore: 1, FlagPenaltyScore: 1,
	}
	tiers := map[menu.Tier]menu.Priority{
		menu.TierMedium: menu.PrioritySuggested,
		menu.TierLow:    menu.PriorityImportant,
		menu.TierReject: menu.PriorityCritical,
		menu.Tier(""):   menu.PriorityCritical,
	}

	for tier, want := range tiers {
		it := &menu.Item{Name: "Wings", SemanticTier: tier, ConfidenceDetails: details}
		(&Generator{}).Generate([]*menu.Item{it})
		require.Len(t, it.RepairRecommendations, 1, "tier %q", tier)
		assert.Equal(t, want, it.RepairRecommendations[0].Priority, "tier %q", tier)
	}
}

func TestGenerate_GarbledNameWithCorrection(t *testing.T) {
	gen := &Generator{Corrector: fakeCorrector{
		fixes: map[string]string{"eeeecccrrrvvvw": "Sweet Corn Cakes"},
	}}
	it := lowTierItem("eeeecccrrrvvvw", 0.2)
	gen.Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecGarbledName, rec.Type)
	assert.Equal(t, menu.PriorityImportant, rec.Priority)
	assert.True(t, rec.AutoFixable)
	require.NotNil(t, rec.ProposedFix)
	assert.Equal(t, "Sweet Corn Cakes", rec.ProposedFix.Name)
	assert.Contains(t, rec.Message, "suggested correction")
	assert.Equal(t, "name_quality_score", rec.SourceSignal)
}

func TestGenerate_GarbledNameWithoutCorrection(t *testing.T) {
	it := lowTierItem("eeeecccrrrvvvw", 0.2)
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecGarbledName, rec.Type)
	assert.False(t, rec.AutoFixable)
	assert.Nil(t, rec.ProposedFix)
	assert.Contains(t, rec.Message, "eeeecccrrrvvvw")
	assert.Contains(t, rec.Message, "manual re-entry")
}

func TestGenerate_EmptyName(t *testing.T) {
	it := lowTierItem("", 0.1)
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecGarbledName, rec.Type)
	assert.False(t, rec.AutoFixable)
	assert.Contains(t, rec.Message, "no readable name")
}

func TestGenerate_ShortName(t *testing.T) {
	it := lowTierItem("ab", 0.3)
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecNameQuality, rec.Type)
	assert.Contains(t, rec.Message, "too short")
	assert.False(t, rec.AutoFixable)
}

func TestGenerate_AllCapsIsAlwaysCosmetic(t *testing.T) {
	// Even on a reject-tier item, a caps-only fix stays suggested
	it := lowTierItem("BUFFALO WINGS", 0.5)
	it.SemanticTier = menu.TierReject
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecNameQuality, rec.Type)
	assert.Equal(t, menu.PrioritySuggested, rec.Priority)
	assert.True(t, rec.AutoFixable)
	require.NotNil(t, rec.ProposedFix)
	assert.Equal(t, "Buffalo Wings", rec.ProposedFix.Name)
	assert.Contains(t, rec.Message, "caps")
}

func TestGenerate_LowNameScoreWithoutPatternUsesCorrector(t *testing.T) {
	gen := &Generator{Corrector: fakeCorrector{
		fixes: map[string]string{"Chiken": "Chicken"},
	}}
	it := lowTierItem("Chiken", 0.5)
	gen.Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecNameQuality, rec.Type)
	assert.True(t, rec.AutoFixable)
	assert.Contains(t, rec.Message, "may contain OCR errors")
	assert.Equal(t, "Chicken", rec.ProposedFix.Name)
}

func TestGenerate_PriceMissing(t *testing.T) {
	it := &menu.Item{
		Name:         "Garden Salad",
		SemanticTier: menu.TierMedium,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 0.3,
			VariantScore: 1, FlagPenaltyScore: 1,
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecPriceMissing, rec.Type)
	assert.Equal(t, "No price was found for this item; manual price entry is needed.", rec.Message)
	assert.Equal(t, "price_score", rec.SourceSignal)
	assert.False(t, rec.AutoFixable)
}

func categoryFlag(suggested string, confidence float64, signals ...string) menu.PriceFlag {
	sigs := make([]any, 0, len(signals))
	for _, s := range signals {
		sigs = append(sigs, s)
	}
	return menu.PriceFlag{
		Severity: menu.SeverityInfo,
		Reason:   menu.ReasonCategorySuggestion,
		Details: map[string]any{
			"current_category":      "Appetizers",
			"suggested_category":    suggested,
			"suggestion_confidence": confidence,
			"signals":               sigs,
		},
	}
}

func TestGenerate_CategoryReassignment(t *testing.T) {
	it := &menu.Item{
		Name:         "Pepperoni Pizza",
		Category:     "Appetizers",
		SemanticTier: menu.TierMedium,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 1, FlagPenaltyScore: 1,
		},
		PriceFlags: []menu.PriceFlag{
			categoryFlag("Pizza", 0.72, "name_similarity", "price_band"),
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecCategoryReassignment, rec.Type)
	assert.True(t, rec.AutoFixable)
	require.NotNil(t, rec.ProposedFix)
	assert.Equal(t, "Pizza", rec.ProposedFix.Category)
	assert.Equal(t, "category_suggestion_flag", rec.SourceSignal)
	assert.Contains(t, rec.Message, `Category "Appetizers" may be wrong`)
	assert.Contains(t, rec.Message, `suggest "Pizza" (confidence 0.72)`)
	assert.Contains(t, rec.Message, "Signals: name_similarity; price_band.")
}

func TestGenerate_CategorySuggestionBelowConfidenceIgnored(t *testing.T) {
	it := &menu.Item{
		Name:         "Pepperoni Pizza",
		SemanticTier: menu.TierMedium,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 1, FlagPenaltyScore: 1,
		},
		PriceFlags: []menu.PriceFlag{categoryFlag("Pizza", 0.39)},
	}
	(&Generator{}).Generate([]*menu.Item{it})
	assert.Empty(t, it.RepairRecommendations)
}

func TestGenerate_StrongestCategorySuggestionWins(t *testing.T) {
	it := &menu.Item{
		Name:         "Pepperoni Pizza",
		SemanticTier: menu.TierMedium,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 1, FlagPenaltyScore: 1,
		},
		PriceFlags: []menu.PriceFlag{
			categoryFlag("Calzones", 0.55),
			categoryFlag("Pizza", 0.81),
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	assert.Equal(t, "Pizza", it.RepairRecommendations[0].ProposedFix.Category)
}

func TestGenerate_VariantFlagsMapToMessages(t *testing.T) {
	it := &menu.Item{
		Name:         "Cheese Pizza",
		SemanticTier: menu.TierLow,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 0.3, FlagPenaltyScore: 1,
		},
		PriceFlags: []menu.PriceFlag{
			{Severity: menu.SeverityWarn, Reason: "variant_price_inversion"},
			{Severity: menu.SeverityWarn, Reason: "duplicate_variant"},
			{Severity: menu.SeverityWarn, Reason: "duplicate_variant"}, // dupe reason, one rec
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	var variantRecs []menu.Recommendation
	for _, rec := range it.RepairRecommendations {
		if rec.Type == menu.RecVariantStandardization {
			variantRecs = append(variantRecs, rec)
		}
	}
	require.Len(t, variantRecs, 2)
	assert.Contains(t, variantRecs[0].Message, "out of order")
	assert.Contains(t, variantRecs[1].Message, "Duplicate variant labels")
	assert.False(t, variantRecs[0].AutoFixable)
}

func TestGenerate_VariantGenericFallback(t *testing.T) {
	it := &menu.Item{
		Name:         "Cheese Pizza",
		SemanticTier: menu.TierLow,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 0.3, FlagPenaltyScore: 1,
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecVariantStandardization, rec.Type)
	assert.Contains(t, rec.Message, "Variant confidence is low")
}

func TestGenerate_FlagAttention(t *testing.T) {
	it := &menu.Item{
		Name:         "Cheese Pizza",
		SemanticTier: menu.TierLow,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 1, PriceScore: 1,
			VariantScore: 1, FlagPenaltyScore: 0.55,
		},
		PriceFlags: []menu.PriceFlag{
			{Severity: menu.SeverityWarn, Reason: "price_outlier"},
			{Severity: menu.SeverityWarn, Reason: "suspicious_price"},
			{Severity: menu.SeverityInfo, Reason: "rounded_price"},
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Len(t, it.RepairRecommendations, 1)
	rec := it.RepairRecommendations[0]
	assert.Equal(t, menu.RecFlagAttention, rec.Type)
	assert.Equal(t, "2 warning and 1 info flag(s) need review: price_outlier, suspicious_price.", rec.Message)
	assert.Equal(t, "flag_penalty_score", rec.SourceSignal)
	require.NotNil(t, rec.Details)
	assert.Equal(t, 2, rec.Details.WarnCount)
	assert.Equal(t, 1, rec.Details.InfoCount)
	assert.Equal(t, []string{"price_outlier", "suspicious_price"}, rec.Details.TopReasons)
}

func TestGenerate_RecommendationsSortedByPriority(t *testing.T) {
	// A reject-tier item with a caps name: the caps fix is cosmetic and
	// must sort after the critical price recommendation.
	it := &menu.Item{
		Name:         "BUFFALO WINGS",
		SemanticTier: menu.TierReject,
		ConfidenceDetails: &menu.ConfidenceDetails{
			GrammarScore: 1, NameQualityScore: 0.5, PriceScore: 0.3,
			VariantScore: 1, FlagPenaltyScore: 1,
		},
	}
	(&Generator{}).Generate([]*menu.Item{it})

	require.Equal(t,
		[]menu.RecommendationType{menu.RecPriceMissing, menu.RecNameQuality},
		recTypes(it.RepairRecommendations))
	assert.Equal(t, menu.PriorityCritical, it.RepairRecommendations[0].Priority)
	assert.Equal(t, menu.PrioritySuggested, it.RepairRecommendations[1].Priority)
}

func TestSummarize(t *testing.T) {
	items := []*menu.Item{
		{
			Category: "Pizza",
			RepairRecommendations: []menu.Recommendation{
				{Type: menu.RecGarbledName, Priority: menu.PriorityImportant, AutoFixable: true},
				{Type: menu.RecPriceMissing, Priority: menu.PriorityImportant},
			},
		},
		{
			Category:              "Pizza",
			RepairRecommendations: []menu.Recommendation{},
		},
		{
			RepairRecommendations: []menu.Recommendation{
				{Type: menu.RecNameQuality, Priority: menu.PrioritySuggested, AutoFixable: true},
			},
		},
	}

	s := Summarize(items)

	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.ItemsWithRecommendations)
	assert.Equal(t, 3, s.TotalRecommendations)
	assert.Equal(t, 2, s.AutoFixableCount)
	assert.Equal(t, 0, s.ByPriority[menu.PriorityCritical])
	assert.Equal(t, 2, s.ByPriority[menu.PriorityImportant])
	assert.Equal(t, 1, s.ByPriority[menu.PrioritySuggested])
	assert.Equal(t, 1, s.ByType[menu.RecGarbledName])

	require.Len(t, s.CategoryBreakdown, 2)
	assert.Equal(t, 2, s.CategoryBreakdown["Pizza"].RecommendationCount)
	assert.Equal(t, 1, s.CategoryBreakdown[menu.Uncategorized].ItemsWithRecommendations)
}
