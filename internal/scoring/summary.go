package scoring

import (
	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/metrics"
)

// Grade is a letter grade for overall menu quality, driven by the share
// of items in the high tier.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

const (
	gradeAThreshold = 0.80
	gradeBThreshold = 0.60
	gradeCThreshold = 0.40
)

// GradeForHighRatio maps the fraction of high-tier items to a letter
// grade.
func GradeForHighRatio(ratio float64) Grade {
	switch {
	case ratio >= gradeAThreshold:
		return GradeA
	case ratio >= gradeBThreshold:
		return GradeB
	case ratio >= gradeCThreshold:
		return GradeC
	default:
		return GradeD
	}
}

// Describe returns a short human descriptor for the grade.
func (g Grade) Describe() string {
	switch g {
	case GradeA:
		return "Excellent"
	case GradeB:
		return "Good"
	case GradeC:
		return "Fair"
	default:
		return "Poor"
	}
}

// CategorySummary aggregates confidence statistics for one category.
type CategorySummary struct {
	Count            int               `json:"count"`
	Mean             float64           `json:"mean"`
	NeedsReviewCount int               `json:"needs_review_count"`
	TierCounts       map[menu.Tier]int `json:"tier_counts"`
}

// MenuSummary aggregates confidence statistics across a whole menu.
type MenuSummary struct {
	TotalItems       int                         `json:"total_items"`
	MeanConfidence   float64                     `json:"mean_confidence"`
	MedianConfidence float64                     `json:"median_confidence"`
	StdevConfidence  float64                     `json:"stdev_confidence"`
	TierCounts       map[menu.Tier]int           `json:"tier_counts"`
	NeedsReviewCount int                         `json:"needs_review_count"`
	QualityGrade     Grade                       `json:"quality_grade"`
	CategorySummary  map[string]*CategorySummary `json:"category_summary"`
}

func newTierCounts() map[menu.Tier]int {
	return map[menu.Tier]int{
		menu.TierHigh:   0,
		menu.TierMedium: 0,
		menu.TierLow:    0,
		menu.TierReject: 0,
	}
}

// Summarize computes the menu-level confidence summary. Items are not
// modified: unscored items count as 0.0, and items with a missing or
// unknown tier count as reject. An empty menu yields zeroed statistics
// and grade D.
func Summarize(items []*menu.Item) *MenuSummary {
	s := &MenuSummary{
		TotalItems:      len(items),
		TierCounts:      newTierCounts(),
		QualityGrade:    GradeD,
		CategorySummary: map[string]*CategorySummary{},
	}
	if len(items) == 0 {
		return s
	}

	scores := make([]float64, 0, len(items))
	for _, it := range items {
		score := it.Score()
		tier := it.SemanticTier.Normalize()
		needsReview := tier != menu.TierHigh

		scores = append(scores, score)
		s.TierCounts[tier]++
		if needsReview {
			s.NeedsReviewCount++
		}

		cat := it.CategoryOrDefault()
		cs := s.CategorySummary[cat]
		if cs == nil {
			cs = &CategorySummary{TierCounts: newTierCounts()}
			s.CategorySummary[cat] = cs
		}
		cs.Count++
		cs.Mean += score
		cs.TierCounts[tier]++
		if needsReview {
			cs.NeedsReviewCount++
		}
	}

	s.MeanConfidence = metrics.Round4(metrics.Mean(scores))
	s.MedianConfidence = metrics.Round4(metrics.Median(scores))
	s.StdevConfidence = metrics.Round4(metrics.SampleStdDev(scores))

	highRatio := float64(s.TierCounts[menu.TierHigh]) / float64(len(items))
	s.QualityGrade = GradeForHighRatio(highRatio)

	for _, cs := range s.CategorySummary {
		cs.Mean = metrics.Round4(cs.Mean / float64(cs.Count))
	}
	return s
}
