// Package report assembles the menu quality report: the confidence and
// repair summaries, pipeline coverage, an issue digest, a worst-first
// category health ranking, and a human-readable narrative.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/metrics"
	"github.com/servline/menuqa/internal/repair"
	"github.com/servline/menuqa/internal/scoring"
)

const (
	defaultTopIssues   = 6
	defaultWorstItems  = 10
	defaultCommonFlags = 8

	weakCategoryCut = 0.60
)

// Caps bounds the issue digest lists. Zero or negative values fall back
// to the defaults.
type Caps struct {
	TopIssues   int
	WorstItems  int
	CommonFlags int
}

// DefaultCaps returns the standard issue digest bounds.
func DefaultCaps() Caps {
	return Caps{
		TopIssues:   defaultTopIssues,
		WorstItems:  defaultWorstItems,
		CommonFlags: defaultCommonFlags,
	}
}

func (c Caps) normalize() Caps {
	d := DefaultCaps()
	if c.TopIssues <= 0 {
		c.TopIssues = d.TopIssues
	}
	if c.WorstItems <= 0 {
		c.WorstItems = d.WorstItems
	}
	if c.CommonFlags <= 0 {
		c.CommonFlags = d.CommonFlags
	}
	return c
}

// Coverage counts how many items carry one pipeline field.
type Coverage struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// TopIssue is one recommendation type ranked by frequency.
type TopIssue struct {
	Type  menu.RecommendationType `json:"type"`
	Count int                     `json:"count"`
	Pct   float64                 `json:"pct"`
}

// WorstItem is one entry of the lowest-confidence item list.
type WorstItem struct {
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Tier       menu.Tier `json:"tier"`
	Category   string    `json:"category"`
	IssueCount int       `json:"issue_count"`
}

// CommonFlag is one price-flag reason ranked by frequency.
type CommonFlag struct {
	Reason   string        `json:"reason"`
	Count    int           `json:"count"`
	Severity menu.Severity `json:"severity"`
}

// IssueDigest points a reviewer at where the problems are.
type IssueDigest struct {
	TopIssues   []TopIssue   `json:"top_issues"`
	WorstItems  []WorstItem  `json:"worst_items"`
	CommonFlags []CommonFlag `json:"common_flags"`
}

// CategoryHealth is one row of the worst-first category ranking.
type CategoryHealth struct {
	Category       string        `json:"category"`
	Count          int           `json:"count"`
	MeanConfidence float64       `json:"mean_confidence"`
	NeedsReviewPct float64       `json:"needs_review_pct"`
	Grade          scoring.Grade `json:"grade"`
}

// Report is the complete semantic quality report for one menu.
type Report struct {
	MenuConfidence    *scoring.MenuSummary `json:"menu_confidence"`
	RepairSummary     *repair.Summary      `json:"repair_summary"`
	AutoRepairResults *repair.RunSummary   `json:"auto_repair_results"`
	PipelineCoverage  map[string]Coverage  `json:"pipeline_coverage"`
	IssueDigest       IssueDigest          `json:"issue_digest"`
	CategoryHealth    []CategoryHealth     `json:"category_health"`
	QualityNarrative  string               `json:"quality_narrative"`
}

// Generate builds the report with default digest caps. Items are read,
// never modified. A nil repairResults means no auto-repair pass ran and
// reports as zeroes.
func Generate(items []*menu.Item, repairResults *repair.RunSummary) *Report {
	return GenerateWithCaps(items, repairResults, DefaultCaps())
}

// GenerateWithCaps is Generate with configurable issue digest bounds.
func GenerateWithCaps(items []*menu.Item, repairResults *repair.RunSummary, caps Caps) *Report {
	caps = caps.normalize()
	if repairResults == nil {
		repairResults = repair.NewRunSummary()
	}
	r := &Report{
		MenuConfidence:    scoring.Summarize(items),
		RepairSummary:     repair.Summarize(items),
		AutoRepairResults: repairResults,
		PipelineCoverage:  pipelineCoverage(items),
		IssueDigest: IssueDigest{
			TopIssues:   topIssues(items, caps.TopIssues),
			WorstItems:  worstItems(items, caps.WorstItems),
			CommonFlags: commonFlags(items, caps.CommonFlags),
		},
		CategoryHealth: categoryHealth(items),
	}
	r.QualityNarrative = narrative(r)
	return r
}

func pipelineCoverage(items []*menu.Item) map[string]Coverage {
	cov := map[string]Coverage{}
	if len(items) == 0 {
		return cov
	}
	counts := map[string]int{
		"has_grammar":                0,
		"has_semantic_confidence":    0,
		"has_semantic_tier":          0,
		"has_price_flags":            0,
		"has_variants":               0,
		"has_repair_recommendations": 0,
		"has_auto_repairs":           0,
	}
	for _, it := range items {
		if it.Grammar != nil {
			counts["has_grammar"]++
		}
		if it.SemanticConfidence != nil {
			counts["has_semantic_confidence"]++
		}
		if it.SemanticTier != "" {
			counts["has_semantic_tier"]++
		}
		if len(it.PriceFlags) > 0 {
			counts["has_price_flags"]++
		}
		if len(it.Variants) > 0 {
			counts["has_variants"]++
		}
		if it.RepairRecommendations != nil {
			counts["has_repair_recommendations"]++
		}
		if it.AutoRepairsApplied != nil {
			counts["has_auto_repairs"]++
		}
	}
	total := float64(len(items))
	for key, n := range counts {
		cov[key] = Coverage{Count: n, Pct: metrics.Round4(float64(n) / total)}
	}
	return cov
}

func topIssues(items []*menu.Item, limit int) []TopIssue {
	counts := map[menu.RecommendationType]int{}
	totalRecs := 0
	for _, it := range items {
		for _, rec := range it.RepairRecommendations {
			counts[rec.Type]++
			totalRecs++
		}
	}
	issues := make([]TopIssue, 0, len(counts))
	for t, n := range counts {
		issues = append(issues, TopIssue{
			Type:  t,
			Count: n,
			Pct:   metrics.Round4(float64(n) / float64(totalRecs)),
		})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].Type < issues[j].Type
	})
	if len(issues) > limit {
		issues = issues[:limit]
	}
	if issues == nil {
		issues = []TopIssue{}
	}
	return issues
}

func worstItems(items []*menu.Item, limit int) []WorstItem {
	ranked := make([]*menu.Item, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() < ranked[j].Score()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	worst := make([]WorstItem, 0, len(ranked))
	for _, it := range ranked {
		worst = append(worst, WorstItem{
			Name:       it.DisplayName(),
			Confidence: it.Score(),
			Tier:       it.SemanticTier.Normalize(),
			Category:   it.CategoryOrDefault(),
			IssueCount: len(it.RepairRecommendations),
		})
	}
	return worst
}

// severityRank orders flag severities from most to least pressing.
var severityRank = map[menu.Severity]int{
	menu.SeverityWarn:    0,
	menu.SeverityInfo:    1,
	menu.SeverityAutoFix: 2,
}

func commonFlags(items []*menu.Item, limit int) []CommonFlag {
	byReason := map[string]*CommonFlag{}
	for _, it := range items {
		for _, f := range it.PriceFlags {
			cf := byReason[f.Reason]
			if cf == nil {
				cf = &CommonFlag{Reason: f.Reason, Severity: f.Severity}
				byReason[f.Reason] = cf
			}
			cf.Count++
			if severityRank[f.Severity] < severityRank[cf.Severity] {
				cf.Severity = f.Severity
			}
		}
	}
	flags := make([]CommonFlag, 0, len(byReason))
	for _, cf := range byReason {
		flags = append(flags, *cf)
	}
	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Count != flags[j].Count {
			return flags[i].Count > flags[j].Count
		}
		return flags[i].Reason < flags[j].Reason
	})
	if len(flags) > limit {
		flags = flags[:limit]
	}
	return flags
}

func categoryHealth(items []*menu.Item) []CategoryHealth {
	type acc struct {
		count       int
		scoreSum    float64
		highCount   int
		reviewCount int
	}
	byCat := map[string]*acc{}
	for _, it := range items {
		cat := it.CategoryOrDefault()
		a := byCat[cat]
		if a == nil {
			a = &acc{}
			byCat[cat] = a
		}
		a.count++
		a.scoreSum += it.Score()
		tier := it.SemanticTier.Normalize()
		if tier == menu.TierHigh {
			a.highCount++
		} else {
			a.reviewCount++
		}
	}
	health := make([]CategoryHealth, 0, len(byCat))
	for cat, a := range byCat {
		n := float64(a.count)
		health = append(health, CategoryHealth{
			Category:       cat,
			Count:          a.count,
			MeanConfidence: metrics.Round4(a.scoreSum / n),
			NeedsReviewPct: metrics.Round4(float64(a.reviewCount) / n),
			Grade:          scoring.GradeForHighRatio(float64(a.highCount) / n),
		})
	}
	sort.Slice(health, func(i, j int) bool {
		if health[i].MeanConfidence != health[j].MeanConfidence {
			return health[i].MeanConfidence < health[j].MeanConfidence
		}
		return health[i].Category < health[j].Category
	})
	return health
}

// narrative renders the report as a few plain sentences for operators who
// will never open the JSON.
func narrative(r *Report) string {
	mc := r.MenuConfidence
	if mc.TotalItems == 0 {
		return "No items were available for semantic quality analysis."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Menu quality grade %s (%s) across %d items with mean confidence %.2f.",
		mc.QualityGrade, mc.QualityGrade.Describe(), mc.TotalItems, mc.MeanConfidence)
	fmt.Fprintf(&b, " Tier breakdown: %d high, %d medium, %d low, %d reject; %d item(s) need review.",
		mc.TierCounts[menu.TierHigh], mc.TierCounts[menu.TierMedium],
		mc.TierCounts[menu.TierLow], mc.TierCounts[menu.TierReject],
		mc.NeedsReviewCount)
	if rs := r.RepairSummary; rs.TotalRecommendations > 0 {
		fmt.Fprintf(&b, " %d repair recommendation(s) were generated, %d of them auto-fixable.",
			rs.TotalRecommendations, rs.AutoFixableCount)
	}
	if ar := r.AutoRepairResults; ar.RepairsApplied > 0 {
		fmt.Fprintf(&b, " %d auto-repairs were applied across %d item(s).",
			ar.RepairsApplied, ar.TotalItemsRepaired)
	}
	if len(r.CategoryHealth) > 0 {
		weakest := r.CategoryHealth[0]
		if weakest.MeanConfidence < weakCategoryCut {
			fmt.Fprintf(&b, " Weakest category: %s (mean confidence %.2f).",
				weakest.Category, weakest.MeanConfidence)
		}
	}
	return b.String()
}
