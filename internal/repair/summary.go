package repair

import "github.com/servline/menuqa/internal/menu"

// CategoryRepairStats counts repair load inside one category.
type CategoryRepairStats struct {
	ItemsWithRecommendations int `json:"items_with_recommendations"`
	RecommendationCount      int `json:"recommendation_count"`
}

// Summary aggregates recommendation counts across a menu.
type Summary struct {
	TotalItems               int                             `json:"total_items"`
	ItemsWithRecommendations int                             `json:"items_with_recommendations"`
	TotalRecommendations     int                             `json:"total_recommendations"`
	ByPriority               map[menu.Priority]int           `json:"by_priority"`
	ByType                   map[menu.RecommendationType]int `json:"by_type"`
	AutoFixableCount         int                             `json:"auto_fixable_count"`
	CategoryBreakdown        map[string]*CategoryRepairStats `json:"category_breakdown"`
}

// Summarize counts recommendations across the menu without modifying any
// item. ByPriority always carries all three priorities; the category
// breakdown only lists categories with at least one recommendation.
func Summarize(items []*menu.Item) *Summary {
	s := &Summary{
		TotalItems: len(items),
		ByPriority: map[menu.Priority]int{
			menu.PriorityCritical:  0,
			menu.PriorityImportant: 0,
			menu.PrioritySuggested: 0,
		},
		ByType:            map[menu.RecommendationType]int{},
		CategoryBreakdown: map[string]*CategoryRepairStats{},
	}
	for _, it := range items {
		if len(it.RepairRecommendations) == 0 {
			continue
		}
		s.ItemsWithRecommendations++
		s.TotalRecommendations += len(it.RepairRecommendations)

		cat := it.CategoryOrDefault()
		cs := s.CategoryBreakdown[cat]
		if cs == nil {
			cs = &CategoryRepairStats{}
			s.CategoryBreakdown[cat] = cs
		}
		cs.ItemsWithRecommendations++
		cs.RecommendationCount += len(it.RepairRecommendations)

		for _, rec := range it.RepairRecommendations {
			s.ByPriority[rec.Priority]++
			s.ByType[rec.Type]++
			if rec.AutoFixable {
				s.AutoFixableCount++
			}
		}
	}
	return s
}
