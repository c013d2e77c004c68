package menu

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Uncategorized is the category bucket for items that never received one.
const Uncategorized = "Uncategorized"

// Tier classifies an item's semantic confidence score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
	TierReject Tier = "reject"
)

// Valid reports whether t is one of the four known tiers. Items carrying
// anything else are treated as reject.
func (t Tier) Valid() bool {
	switch t {
	case TierHigh, TierMedium, TierLow, TierReject:
		return true
	}
	return false
}

// Normalize maps unknown or missing tiers to TierReject.
func (t Tier) Normalize() Tier {
	if t.Valid() {
		return t
	}
	return TierReject
}

// Priority orders repair recommendations by urgency.
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PrioritySuggested Priority = "suggested"
)

var priorityRank = map[Priority]int{
	PriorityCritical:  0,
	PriorityImportant: 1,
	PrioritySuggested: 2,
}

// Rank returns a sortable position for p. Unknown priorities sort last.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

// RecommendationType identifies the kind of repair a recommendation proposes.
type RecommendationType string

const (
	RecGarbledName            RecommendationType = "garbled_name"
	RecNameQuality            RecommendationType = "name_quality"
	RecPriceMissing           RecommendationType = "price_missing"
	RecCategoryReassignment   RecommendationType = "category_reassignment"
	RecVariantStandardization RecommendationType = "variant_standardization"
	RecFlagAttention          RecommendationType = "flag_attention"
)

// Severity grades a price flag.
type Severity string

const (
	SeverityWarn    Severity = "warn"
	SeverityInfo    Severity = "info"
	SeverityAutoFix Severity = "auto_fix"
)

// Grammar holds the parse result for an item's OCR line.
type Grammar struct {
	ParsedName      string   `json:"parsed_name,omitempty"`
	ParseConfidence *float64 `json:"parse_confidence,omitempty"`
}

// Variant is one size/option row under an item.
type Variant struct {
	Label      string   `json:"label,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	PriceCents int      `json:"price_cents,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// PriceCandidate is one price reading extracted from the item's text.
type PriceCandidate struct {
	PriceCents int     `json:"price_cents,omitempty"`
	Value      float64 `json:"value,omitempty"`
}

// PriceFlag records an integrity finding raised by an upstream checker.
type PriceFlag struct {
	Severity Severity       `json:"severity,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// ProposedFix carries the concrete replacement value for an auto-fixable
// recommendation. Only one of the fields is set, matching the
// recommendation's type. On the wire name fixes are a bare string and
// category fixes an object, so the type marshals itself.
type ProposedFix struct {
	Name     string
	Category string
}

// MarshalJSON emits name fixes as a bare string and category fixes as
// {"category": ...}.
func (f ProposedFix) MarshalJSON() ([]byte, error) {
	if f.Category != "" {
		return json.Marshal(map[string]string{"category": f.Category})
	}
	return json.Marshal(f.Name)
}

// UnmarshalJSON accepts either wire shape. Malformed fixes decode to the
// zero value, which the repair executor skips.
func (f *ProposedFix) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Name = s
		return nil
	}
	var obj struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		f.Name, f.Category = obj.Name, obj.Category
		return nil
	}
	*f = ProposedFix{}
	return nil
}

// FlagAttentionDetails summarizes the flags behind a flag_attention
// recommendation.
type FlagAttentionDetails struct {
	WarnCount  int      `json:"warn_count"`
	InfoCount  int      `json:"info_count"`
	TopReasons []string `json:"top_reasons"`
}

// Recommendation is one concrete repair suggestion attached to an item.
type Recommendation struct {
	Type         RecommendationType    `json:"type"`
	Priority     Priority              `json:"priority"`
	Message      string                `json:"message"`
	AutoFixable  bool                  `json:"auto_fixable"`
	ProposedFix  *ProposedFix          `json:"proposed_fix,omitempty"`
	SourceSignal string                `json:"source_signal,omitempty"`
	Details      *FlagAttentionDetails `json:"details,omitempty"`
	Applied      bool                  `json:"applied,omitempty"`
}

// RepairAudit is one field change made by the auto-repair pass.
type RepairAudit struct {
	Type     string `json:"type"`
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// ConfidenceDetails is the per-signal breakdown behind an item's semantic
// confidence score. Raw scores and weighted contributions are rounded to
// four decimal places.
type ConfidenceDetails struct {
	GrammarScore        float64 `json:"grammar_score"`
	GrammarWeight       float64 `json:"grammar_weight"`
	GrammarWeighted     float64 `json:"grammar_weighted"`
	NameQualityScore    float64 `json:"name_quality_score"`
	NameQualityWeight   float64 `json:"name_quality_weight"`
	NameQualityWeighted float64 `json:"name_quality_weighted"`
	PriceScore          float64 `json:"price_score"`
	PriceWeight         float64 `json:"price_weight"`
	PriceWeighted       float64 `json:"price_weighted"`
	VariantScore        float64 `json:"variant_score"`
	VariantWeight       float64 `json:"variant_weight"`
	VariantWeighted     float64 `json:"variant_weighted"`
	FlagPenaltyScore    float64 `json:"flag_penalty_score"`
	FlagPenaltyWeight   float64 `json:"flag_penalty_weight"`
	FlagPenaltyWeighted float64 `json:"flag_penalty_weighted"`
	Final               float64 `json:"final"`
}

// Item is a single merged menu item as produced by the OCR pipeline,
// plus the quality fields this engine writes. Items arrive in one of two
// shapes: line-merge output carries MergedText (and sometimes Grammar),
// while structured extraction output carries Name directly. Accessors on
// Item normalize across both.
type Item struct {
	MergedText      string           `json:"merged_text,omitempty"`
	Name            string           `json:"name,omitempty"`
	Confidence      *float64         `json:"confidence,omitempty"`
	Category        string           `json:"category,omitempty"`
	PriceCents      int              `json:"price_cents,omitempty"`
	Grammar         *Grammar         `json:"grammar,omitempty"`
	Variants        []Variant        `json:"variants,omitempty"`
	PriceCandidates []PriceCandidate `json:"price_candidates,omitempty"`
	PriceFlags      []PriceFlag      `json:"price_flags,omitempty"`

	// Written by the scoring and repair passes. SemanticConfidence is nil
	// until the item has been scored; RepairRecommendations and
	// AutoRepairsApplied are nil until their passes have run, and become
	// non-nil (possibly empty) afterwards. omitzero keeps the keys for
	// empty lists so a serialized item still records that the pass ran.
	SemanticConfidence    *float64           `json:"semantic_confidence,omitempty"`
	ConfidenceDetails     *ConfidenceDetails `json:"semantic_confidence_details,omitempty"`
	SemanticTier          Tier               `json:"semantic_tier,omitempty"`
	NeedsReview           bool               `json:"needs_review"`
	RepairRecommendations []Recommendation   `json:"repair_recommendations,omitzero"`
	AutoRepairsApplied    []RepairAudit      `json:"auto_repairs_applied,omitzero"`
}

var priceTokenRE = regexp.MustCompile(`\$?\d+\.\d{2}`)

// DisplayName returns the best available name for the item: the grammar
// parse first, then the structured name, then the merged OCR text with
// price tokens stripped. The result is trimmed and may be empty.
func (it *Item) DisplayName() string {
	if it.Grammar != nil {
		if name := strings.TrimSpace(it.Grammar.ParsedName); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(it.Name); name != "" {
		return name
	}
	return strings.TrimSpace(priceTokenRE.ReplaceAllString(it.MergedText, ""))
}

// CategoryOrDefault returns the item's category, or Uncategorized when it
// has none.
func (it *Item) CategoryOrDefault() string {
	if c := strings.TrimSpace(it.Category); c != "" {
		return c
	}
	return Uncategorized
}

// HasPrice reports whether any price source on the item carries a usable
// price: the top-level price, a candidate, a variant price, or a parsed
// variant grid.
func (it *Item) HasPrice() bool {
	if it.PriceCents > 0 {
		return true
	}
	for _, c := range it.PriceCandidates {
		if c.PriceCents > 0 || c.Value > 0 {
			return true
		}
	}
	for _, v := range it.Variants {
		if v.PriceCents > 0 {
			return true
		}
	}
	return false
}

// Score returns the item's semantic confidence, or 0 when unscored.
func (it *Item) Score() float64 {
	if it.SemanticConfidence == nil {
		return 0
	}
	return *it.SemanticConfidence
}
