// Package repair turns per-item confidence signals into concrete repair
// recommendations, applies the auto-fixable ones, and summarizes repair
// load across a menu.
package repair

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/scoring"
)

// Signal thresholds: a recommendation fires only when the signal's raw
// score (from the confidence audit trail) is strictly below the threshold.
const (
	nameQualityThreshold = 0.60
	priceScoreThreshold  = 0.50
	variantThreshold     = 0.50
	flagPenaltyThreshold = 0.70
)

// Category suggestions weaker than this are left as flags.
const minSuggestionConfidence = 0.40

const (
	maxSignalsInMessage = 3
	maxTopReasons       = 3
)

// NameCorrector supplies best-effort replacements for OCR-damaged names.
// Correct returns the corrected name and true when it has a fix that
// differs from the input.
type NameCorrector interface {
	Correct(name string) (string, bool)
}

// Generator produces repair recommendations. The zero value works and
// simply never proposes OCR name corrections.
type Generator struct {
	Corrector NameCorrector
}

// Generate writes RepairRecommendations for every item in place. The
// field is always set afterwards: high-tier items get an empty list, and
// re-running replaces any previous recommendations.
func (g *Generator) Generate(items []*menu.Item) {
	for _, it := range items {
		g.generateItem(it)
	}
}

// priorityForTier maps an item's tier to the priority its recommendations
// carry. High-tier items get none; a missing or unknown tier is treated
// as reject.
func priorityForTier(t menu.Tier) (menu.Priority, bool) {
	switch t {
	case menu.TierHigh:
		return "", false
	case menu.TierMedium:
		return menu.PrioritySuggested, true
	case menu.TierLow:
		return menu.PriorityImportant, true
	default:
		return menu.PriorityCritical, true
	}
}

func (g *Generator) generateItem(it *menu.Item) {
	prio, ok := priorityForTier(it.SemanticTier)
	if !ok {
		it.RepairRecommendations = []menu.Recommendation{}
		return
	}

	d := detailsOrNeutral(it.ConfidenceDetails)

	recs := g.nameRecs(it, d, prio)
	recs = append(recs, priceRecs(d, prio)...)
	recs = append(recs, categoryRecs(it, prio)...)
	recs = append(recs, variantRecs(it, d, prio)...)
	recs = append(recs, flagRecs(it, d, prio)...)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	if recs == nil {
		recs = []menu.Recommendation{}
	}
	it.RepairRecommendations = recs
}

// detailsOrNeutral guards against items that were never scored: without
// an audit trail every signal reads as perfect and nothing fires.
func detailsOrNeutral(d *menu.ConfidenceDetails) *menu.ConfidenceDetails {
	if d != nil {
		return d
	}
	return &menu.ConfidenceDetails{
		GrammarScore:     1.0,
		NameQualityScore: 1.0,
		PriceScore:       1.0,
		VariantScore:     1.0,
		FlagPenaltyScore: 1.0,
	}
}

func (g *Generator) correct(name string) (string, bool) {
	if g.Corrector == nil {
		return "", false
	}
	fixed, ok := g.Corrector.Correct(name)
	if !ok || fixed == name || strings.TrimSpace(fixed) == "" {
		return "", false
	}
	return fixed, true
}

func (g *Generator) nameRecs(it *menu.Item, d *menu.ConfidenceDetails, prio menu.Priority) []menu.Recommendation {
	if d.NameQualityScore >= nameQualityThreshold {
		return nil
	}
	name := it.DisplayName()
	if name == "" {
		return []menu.Recommendation{{
			Type:         menu.RecGarbledName,
			Priority:     prio,
			Message:      "Item has no readable name; the OCR text did not yield one.",
			SourceSignal: "name_quality_score",
		}}
	}

	var recs []menu.Recommendation
	fired := false

	if scoring.IsNameGarbled(name) {
		fired = true
		if fix, ok := g.correct(name); ok {
			recs = append(recs, menu.Recommendation{
				Type:         menu.RecGarbledName,
				Priority:     prio,
				Message:      fmt.Sprintf("Name %q looks like OCR garble; suggested correction: %q.", name, fix),
				AutoFixable:  true,
				ProposedFix:  &menu.ProposedFix{Name: fix},
				SourceSignal: "name_quality_score",
			})
		} else {
			recs = append(recs, menu.Recommendation{
				Type:         menu.RecGarbledName,
				Priority:     prio,
				Message:      fmt.Sprintf("Name %q looks like OCR garble and needs manual re-entry.", name),
				SourceSignal: "name_quality_score",
			})
		}
	}

	if utf8.RuneCountInString(name) < 3 {
		fired = true
		recs = append(recs, menu.Recommendation{
			Type:         menu.RecNameQuality,
			Priority:     prio,
			Message:      fmt.Sprintf("Name %q is too short to be a real menu item name.", name),
			SourceSignal: "name_quality_score",
		})
	}

	if scoring.IsAllCaps(name) {
		fired = true
		titled := titleCase(name)
		recs = append(recs, menu.Recommendation{
			Type:         menu.RecNameQuality,
			Priority:     cosmeticPriority(prio),
			Message:      fmt.Sprintf("Name %q is in all caps; suggested title case: %q.", name, titled),
			AutoFixable:  true,
			ProposedFix:  &menu.ProposedFix{Name: titled},
			SourceSignal: "name_quality_score",
		})
	}

	if !fired {
		if fix, ok := g.correct(name); ok {
			recs = append(recs, menu.Recommendation{
				Type:         menu.RecNameQuality,
				Priority:     prio,
				Message:      fmt.Sprintf("Name %q may contain OCR errors; suggested correction: %q.", name, fix),
				AutoFixable:  true,
				ProposedFix:  &menu.ProposedFix{Name: fix},
				SourceSignal: "name_quality_score",
			})
		}
	}
	return recs
}

// cosmeticPriority downgrades purely cosmetic fixes: capitalization never
// blocks publication, so critical and important both drop to suggested.
func cosmeticPriority(p menu.Priority) menu.Priority {
	if p == menu.PriorityCritical || p == menu.PriorityImportant {
		return menu.PrioritySuggested
	}
	return p
}

func titleCase(name string) string {
	return cases.Title(language.English).String(strings.ToLower(name))
}

func priceRecs(d *menu.ConfidenceDetails, prio menu.Priority) []menu.Recommendation {
	if d.PriceScore >= priceScoreThreshold {
		return nil
	}
	return []menu.Recommendation{{
		Type:         menu.RecPriceMissing,
		Priority:     prio,
		Message:      "No price was found for this item; manual price entry is needed.",
		SourceSignal: "price_score",
	}}
}

func categoryRecs(it *menu.Item, prio menu.Priority) []menu.Recommendation {
	var best menu.CategorySuggestion
	found := false
	for _, f := range it.PriceFlags {
		cs, ok := f.CategorySuggestion()
		if !ok || cs.SuggestionConfidence < minSuggestionConfidence {
			continue
		}
		if !found || cs.SuggestionConfidence > best.SuggestionConfidence {
			best = cs
			found = true
		}
	}
	if !found {
		return nil
	}

	current := best.CurrentCategory
	if current == "" {
		current = it.CategoryOrDefault()
	}
	msg := fmt.Sprintf("Category %q may be wrong; similar items suggest %q (confidence %.2f).",
		current, best.SuggestedCategory, best.SuggestionConfidence)
	if len(best.Signals) > 0 {
		signals := best.Signals
		if len(signals) > maxSignalsInMessage {
			signals = signals[:maxSignalsInMessage]
		}
		msg += " Signals: " + strings.Join(signals, "; ") + "."
	}
	return []menu.Recommendation{{
		Type:         menu.RecCategoryReassignment,
		Priority:     prio,
		Message:      msg,
		AutoFixable:  true,
		ProposedFix:  &menu.ProposedFix{Category: best.SuggestedCategory},
		SourceSignal: "category_suggestion_flag",
	}}
}

// variantFlagMessages maps upstream variant and price-grid flag reasons to
// actionable messages. Unrecognized reasons fall back to one generic
// recommendation.
var variantFlagMessages = map[string]string{
	"variant_price_inversion":           "Variant prices are out of order; larger sizes should not cost less than smaller ones.",
	"duplicate_variant":                 "Duplicate variant labels were detected; remove or merge the repeated rows.",
	"zero_price_variant":                "One or more variants carry a $0.00 price; fill in the missing price.",
	"mixed_variant_kinds":               "Variants mix different kinds (for example sizes and combos); split them into separate option sets.",
	"size_gap":                          "The variant size ladder has a gap; check the scan for a missed size row.",
	"grid_incomplete":                   "The price grid is incomplete; some size columns have no price.",
	"grid_count_outlier":                "This item's variant count is unusual for its category; verify the rows against the scan.",
	"cross_item_variant_count_outlier":  "This item's variant count is unusual for its category; verify the rows against the scan.",
	"cross_item_variant_label_mismatch": "Variant labels do not match the label set used by similar items; standardize them.",
}

func variantRecs(it *menu.Item, d *menu.ConfidenceDetails, prio menu.Priority) []menu.Recommendation {
	if d.VariantScore >= variantThreshold {
		return nil
	}
	var recs []menu.Recommendation
	seen := map[string]bool{}
	for _, f := range it.PriceFlags {
		msg, ok := variantFlagMessages[f.Reason]
		if !ok || seen[f.Reason] {
			continue
		}
		seen[f.Reason] = true
		recs = append(recs, menu.Recommendation{
			Type:         menu.RecVariantStandardization,
			Priority:     prio,
			Message:      msg,
			SourceSignal: "variant_score",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, menu.Recommendation{
			Type:         menu.RecVariantStandardization,
			Priority:     prio,
			Message:      "Variant confidence is low; review the variant labels and prices against the scan.",
			SourceSignal: "variant_score",
		})
	}
	return recs
}

func flagRecs(it *menu.Item, d *menu.ConfidenceDetails, prio menu.Priority) []menu.Recommendation {
	if d.FlagPenaltyScore >= flagPenaltyThreshold || len(it.PriceFlags) == 0 {
		return nil
	}

	warnCount, infoCount := 0, 0
	topReasons := []string{}
	seen := map[string]bool{}
	for _, f := range it.PriceFlags {
		if f.Severity == menu.SeverityWarn {
			warnCount++
			if !seen[f.Reason] && len(topReasons) < maxTopReasons {
				seen[f.Reason] = true
				topReasons = append(topReasons, f.Reason)
			}
		} else {
			infoCount++
		}
	}

	msg := fmt.Sprintf("%d warning and %d info flag(s) need review", warnCount, infoCount)
	if len(topReasons) > 0 {
		msg += ": " + strings.Join(topReasons, ", ")
	}
	msg += "."
	return []menu.Recommendation{{
		Type:         menu.RecFlagAttention,
		Priority:     prio,
		Message:      msg,
		SourceSignal: "flag_penalty_score",
		Details: &menu.FlagAttentionDetails{
			WarnCount:  warnCount,
			InfoCount:  infoCount,
			TopReasons: topReasons,
		},
	}}
}
