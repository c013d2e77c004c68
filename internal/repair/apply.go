package repair

import (
	"strings"

	"github.com/servline/menuqa/internal/menu"
)

// RunSummary reports what one auto-repair pass changed.
type RunSummary struct {
	TotalItemsRepaired int            `json:"total_items_repaired"`
	RepairsApplied     int            `json:"repairs_applied"`
	ByType             map[string]int `json:"by_type"`
}

// NewRunSummary returns an empty run summary.
func NewRunSummary() *RunSummary {
	return &RunSummary{ByType: map[string]int{}}
}

// Apply executes every auto-fixable recommendation that carries a usable
// proposed fix, writing the fixes onto the items and an audit entry per
// field change. Recommendations already marked applied are skipped and
// the audit list is reset on each call, so running twice is a no-op the
// second time. Callers are expected to re-run scoring and classification
// afterwards to reflect the repaired fields.
func Apply(items []*menu.Item) *RunSummary {
	res := NewRunSummary()
	for _, it := range items {
		it.AutoRepairsApplied = []menu.RepairAudit{}
		repaired := false
		for i := range it.RepairRecommendations {
			rec := &it.RepairRecommendations[i]
			if rec.Applied || !rec.AutoFixable || rec.ProposedFix == nil {
				continue
			}
			var entries []menu.RepairAudit
			switch rec.Type {
			case menu.RecGarbledName, menu.RecNameQuality:
				entries = applyNameFix(it, rec.ProposedFix.Name)
			case menu.RecCategoryReassignment:
				entries = applyCategoryFix(it, rec.ProposedFix.Category)
			}
			if len(entries) == 0 {
				continue
			}
			it.AutoRepairsApplied = append(it.AutoRepairsApplied, entries...)
			rec.Applied = true
			repaired = true
			res.RepairsApplied += len(entries)
			for _, e := range entries {
				res.ByType[e.Type]++
			}
		}
		if repaired {
			res.TotalItemsRepaired++
		}
	}
	return res
}

// applyNameFix overwrites the grammar parse and the structured name where
// they exist. An item with neither gets the fix as a new structured name
// so downstream stages have something to read.
func applyNameFix(it *menu.Item, fix string) []menu.RepairAudit {
	if strings.TrimSpace(fix) == "" {
		return nil
	}
	hadGrammar := it.Grammar != nil
	hadName := it.Name != ""

	var entries []menu.RepairAudit
	if hadGrammar && it.Grammar.ParsedName != fix {
		entries = append(entries, menu.RepairAudit{
			Type: "name", Field: "grammar.parsed_name",
			OldValue: it.Grammar.ParsedName, NewValue: fix,
		})
		it.Grammar.ParsedName = fix
	}
	if hadName && it.Name != fix {
		entries = append(entries, menu.RepairAudit{
			Type: "name", Field: "name",
			OldValue: it.Name, NewValue: fix,
		})
		it.Name = fix
	}
	if !hadGrammar && !hadName {
		entries = append(entries, menu.RepairAudit{
			Type: "name", Field: "name",
			OldValue: "", NewValue: fix,
		})
		it.Name = fix
	}
	return entries
}

func applyCategoryFix(it *menu.Item, fix string) []menu.RepairAudit {
	if fix == "" || it.Category == fix {
		return nil
	}
	entry := menu.RepairAudit{
		Type: "category", Field: "category",
		OldValue: it.Category, NewValue: fix,
	}
	it.Category = fix
	return []menu.RepairAudit{entry}
}
