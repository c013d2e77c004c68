package menu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestTierNormalize(t *testing.T) {
	assert.Equal(t, TierHigh, TierHigh.Normalize())
	assert.Equal(t, TierMedium, TierMedium.Normalize())
	assert.Equal(t, TierLow, TierLow.Normalize())
	assert.Equal(t, TierReject, TierReject.Normalize())

	// Missing and unknown tiers collapse to reject
	assert.Equal(t, TierReject, Tier("").Normalize())
	assert.Equal(t, TierReject, Tier("excellent").Normalize())
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityCritical.Rank(), PriorityImportant.Rank())
	assert.Less(t, PriorityImportant.Rank(), PrioritySuggested.Rank())

	// Unknown priorities sort after the known three
	assert.Greater(t, Priority("whenever").Rank(), PrioritySuggested.Rank())
}

func TestDisplayName_PrefersGrammarParse(t *testing.T) {
	it := &Item{
		MergedText: "Chicken Wings 12.99",
		Name:       "chicken wngs",
		Grammar:    &Grammar{ParsedName: "Chicken Wings"},
	}
	assert.Equal(t, "Chicken Wings", it.DisplayName())
}

func TestDisplayName_FallsBackToName(t *testing.T) {
	it := &Item{
		MergedText: "Caesar Salad 8.99",
		Name:       "Caesar Salad",
		Grammar:    &Grammar{ParsedName: "  "},
	}
	assert.Equal(t, "Caesar Salad", it.DisplayName())
}

func TestDisplayName_StripsPricesFromMergedText(t *testing.T) {
	it := &Item{MergedText: "Margherita Pizza $12.50"}
	assert.Equal(t, "Margherita Pizza", it.DisplayName())

	it = &Item{MergedText: "Wings 9.99"}
	assert.Equal(t, "Wings", it.DisplayName())

	it = &Item{}
	assert.Equal(t, "", it.DisplayName())
}

func TestCategoryOrDefault(t *testing.T) {
	assert.Equal(t, "Appetizers", (&Item{Category: "Appetizers"}).CategoryOrDefault())
	assert.Equal(t, Uncategorized, (&Item{}).CategoryOrDefault())
	assert.Equal(t, Uncategorized, (&Item{Category: "   "}).CategoryOrDefault())
}

func TestHasPrice(t *testing.T) {
	assert.False(t, (&Item{}).HasPrice())
	assert.True(t, (&Item{PriceCents: 1299}).HasPrice())
	assert.True(t, (&Item{PriceCandidates: []PriceCandidate{{PriceCents: 899}}}).HasPrice())
	assert.True(t, (&Item{PriceCandidates: []PriceCandidate{{Value: 8.99}}}).HasPrice())
	assert.True(t, (&Item{Variants: []Variant{{Label: "Large", PriceCents: 1599}}}).HasPrice())

	// Zero-valued sources do not count
	assert.False(t, (&Item{
		PriceCandidates: []PriceCandidate{{}},
		Variants:        []Variant{{Label: "Small"}},
	}).HasPrice())
}

func TestScore_UnscoredIsZero(t *testing.T) {
	assert.Equal(t, 0.0, (&Item{}).Score())
	assert.Equal(t, 0.85, (&Item{SemanticConfidence: floatPtr(0.85)}).Score())
}

func TestItemMarshal_KeepsEmptyPassListsPresent(t *testing.T) {
	// A high-tier item after the repair passes: both lists ran and found
	// nothing. The keys must survive serialization so a round-tripped
	// document still records that the passes ran.
	item := &Item{
		Name:                  "Margherita Pizza",
		SemanticConfidence:    floatPtr(0.91),
		SemanticTier:          TierHigh,
		RepairRecommendations: []Recommendation{},
		AutoRepairsApplied:    []RepairAudit{},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["repair_recommendations"])
	assert.Equal(t, []any{}, raw["auto_repairs_applied"])

	// Before the passes run the lists are nil and the keys stay absent
	data, err = json.Marshal(&Item{Name: "Margherita Pizza"})
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "repair_recommendations")
	assert.NotContains(t, raw, "auto_repairs_applied")
}

func TestProposedFix_NameMarshalsAsBareString(t *testing.T) {
	rec := Recommendation{
		Type:        RecGarbledName,
		AutoFixable: true,
		ProposedFix: &ProposedFix{Name: "Chicken Wings"},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Chicken Wings", raw["proposed_fix"])
}

func TestProposedFix_CategoryMarshalsAsObject(t *testing.T) {
	rec := Recommendation{
		Type:        RecCategoryReassignment,
		AutoFixable: true,
		ProposedFix: &ProposedFix{Category: "Pizza"},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"category": "Pizza"}, raw["proposed_fix"])
}

func TestProposedFix_UnmarshalBothShapes(t *testing.T) {
	var f ProposedFix
	require.NoError(t, json.Unmarshal([]byte(`"Chicken Wings"`), &f))
	assert.Equal(t, ProposedFix{Name: "Chicken Wings"}, f)

	require.NoError(t, json.Unmarshal([]byte(`{"category":"Pizza"}`), &f))
	assert.Equal(t, ProposedFix{Category: "Pizza"}, f)

	// Malformed fixes decode to the zero value instead of failing the
	// whole item
	require.NoError(t, json.Unmarshal([]byte(`42`), &f))
	assert.Equal(t, ProposedFix{}, f)
}
