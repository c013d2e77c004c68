// Package scoring computes a unified per-item semantic confidence score by
// aggregating five independent signal sources: grammar parse confidence,
// name quality, price presence, variant quality, and a severity-weighted
// flag penalty. It then classifies items into confidence tiers and
// summarizes a whole menu.
//
// All signal scorers are read-only on upstream data.
package scoring

import (
	"unicode"
	"unicode/utf8"

	"github.com/servline/menuqa/internal/menu"
)

// Signal weights. They must sum to 1.0.
const (
	weightGrammar = 0.30
	weightName    = 0.20
	weightPrice   = 0.20
	weightVariant = 0.15
	weightFlags   = 0.15
)

// Flag penalty per severity.
const (
	flagPenaltyWarn    = 0.15
	flagPenaltyInfo    = 0.05
	flagPenaltyAutoFix = 0.02
)

// Name length thresholds: names under nameShortLen runes score 0.3,
// under nameMediumLen 0.6, otherwise 1.0.
const (
	nameShortLen  = 3
	nameMediumLen = 6
)

const (
	pricePresentScore = 1.0
	priceAbsentScore  = 0.3
)

// Neutral defaults when a signal is unavailable.
const (
	defaultGrammarScore = 0.5
	defaultVariantScore = 0.5
)

// Letters that OCR noise over-produces; a name dominated by them is a
// garble signal.
var garbleChars = map[rune]bool{
	's': true, 'e': true, 'c': true, 'r': true, 'n': true,
	'o': true, 't': true, 'v': true, 'w': true,
}

// GrammarScore reads the grammar parse confidence, falling back to the
// item-level confidence and then to a neutral default.
func GrammarScore(it *menu.Item) float64 {
	if it.Grammar != nil && it.Grammar.ParseConfidence != nil {
		return *it.Grammar.ParseConfidence
	}
	if it.Confidence != nil {
		return *it.Confidence
	}
	return defaultGrammarScore
}

// NameQualityScore scores the item's display name on length, garble, and
// capitalization, taking the weakest of the three signals.
func NameQualityScore(it *menu.Item) float64 {
	name := it.DisplayName()
	if name == "" {
		return 0.1
	}

	lengthScore := 1.0
	switch n := utf8.RuneCountInString(name); {
	case n < nameShortLen:
		lengthScore = 0.3
	case n < nameMediumLen:
		lengthScore = 0.6
	}

	garbleScore := 1.0
	if IsNameGarbled(name) {
		garbleScore = 0.2
	}

	// Small ding only: OCR often produces legitimate all-caps names.
	capsScore := 1.0
	if IsAllCaps(name) {
		capsScore = 0.9
	}

	return min(lengthScore, garbleScore, capsScore)
}

// PricePresenceScore returns 1.0 when the item carries at least one
// positive price anywhere, 0.3 otherwise.
func PricePresenceScore(it *menu.Item) float64 {
	if it.HasPrice() {
		return pricePresentScore
	}
	return priceAbsentScore
}

// VariantQualityScore averages variant confidences. Variants without a
// confidence count as 0.5, and items without variants get the neutral
// default.
func VariantQualityScore(it *menu.Item) float64 {
	if len(it.Variants) == 0 {
		return defaultVariantScore
	}
	sum := 0.0
	for _, v := range it.Variants {
		if v.Confidence != nil {
			sum += *v.Confidence
		} else {
			sum += 0.5
		}
	}
	return sum / float64(len(it.Variants))
}

// FlagPenaltyScore is 1.0 minus severity-weighted penalties from the
// item's price flags, floored at 0. Unknown severities count as info.
func FlagPenaltyScore(it *menu.Item) float64 {
	if len(it.PriceFlags) == 0 {
		return 1.0
	}
	penalty := 0.0
	for _, f := range it.PriceFlags {
		switch f.Severity {
		case menu.SeverityWarn:
			penalty += flagPenaltyWarn
		case menu.SeverityAutoFix:
			penalty += flagPenaltyAutoFix
		default:
			penalty += flagPenaltyInfo
		}
	}
	return max(0, 1.0-penalty)
}

// IsNameGarbled reports whether a name looks like OCR garble rather than a
// real menu item name. It requires at least two of three signals: a run of
// three or more repeated characters, a high ratio of common noise letters,
// or low character diversity.
func IsNameGarbled(name string) bool {
	var alpha []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			alpha = append(alpha, unicode.ToLower(r))
		}
	}
	if len(alpha) < 4 {
		return false
	}

	garbleCount := 0
	unique := make(map[rune]bool, len(alpha))
	for _, r := range alpha {
		if garbleChars[r] {
			garbleCount++
		}
		unique[r] = true
	}
	garbleRatio := float64(garbleCount) / float64(len(alpha))
	uniqueRatio := float64(len(unique)) / float64(len(alpha))

	signals := 0
	if hasTripleRun(name) {
		signals++
	}
	if garbleRatio >= 0.60 {
		signals++
	}
	if uniqueRatio <= 0.40 {
		signals++
	}
	return signals >= 2
}

// hasTripleRun reports whether s contains the same character three or more
// times in a row, case-insensitively.
func hasTripleRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		r = unicode.ToLower(r)
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// IsAllCaps reports whether name is entirely upper-case and long enough
// for that to matter; names of two runes or fewer are exempt.
func IsAllCaps(name string) bool {
	if utf8.RuneCountInString(name) <= 2 {
		return false
	}
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
