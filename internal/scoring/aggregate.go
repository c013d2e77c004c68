package scoring

import (
	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/metrics"
)

// ScoreItems computes the weighted semantic confidence for each item and
// writes SemanticConfidence plus the per-signal audit trail in place.
// Re-scoring an item overwrites both fields.
func ScoreItems(items []*menu.Item) {
	for _, it := range items {
		scoreItem(it)
	}
}

func scoreItem(it *menu.Item) {
	grammarRaw := GrammarScore(it)
	nameRaw := NameQualityScore(it)
	priceRaw := PricePresenceScore(it)
	variantRaw := VariantQualityScore(it)
	flagRaw := FlagPenaltyScore(it)

	weightedGrammar := grammarRaw * weightGrammar
	weightedName := nameRaw * weightName
	weightedPrice := priceRaw * weightPrice
	weightedVariant := variantRaw * weightVariant
	weightedFlags := flagRaw * weightFlags

	raw := weightedGrammar + weightedName + weightedPrice + weightedVariant + weightedFlags
	final := metrics.Clamp01(metrics.Round4(raw))

	score := final
	it.SemanticConfidence = &score
	it.ConfidenceDetails = &menu.ConfidenceDetails{
		GrammarScore:        metrics.Round4(grammarRaw),
		GrammarWeight:       weightGrammar,
		GrammarWeighted:     metrics.Round4(weightedGrammar),
		NameQualityScore:    metrics.Round4(nameRaw),
		NameQualityWeight:   weightName,
		NameQualityWeighted: metrics.Round4(weightedName),
		PriceScore:          metrics.Round4(priceRaw),
		PriceWeight:         weightPrice,
		PriceWeighted:       metrics.Round4(weightedPrice),
		VariantScore:        metrics.Round4(variantRaw),
		VariantWeight:       weightVariant,
		VariantWeighted:     metrics.Round4(weightedVariant),
		FlagPenaltyScore:    metrics.Round4(flagRaw),
		FlagPenaltyWeight:   weightFlags,
		FlagPenaltyWeighted: metrics.Round4(weightedFlags),
		Final:               final,
	}
}
