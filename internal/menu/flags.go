package menu

import "github.com/go-viper/mapstructure/v2"

// ReasonCategorySuggestion marks a flag whose details carry a category
// reassignment proposal from the cross-item consistency pass.
const ReasonCategorySuggestion = "cross_item_category_suggestion"

// CategorySuggestion is the details payload of a category suggestion flag.
type CategorySuggestion struct {
	CurrentCategory      string   `json:"current_category"`
	SuggestedCategory    string   `json:"suggested_category"`
	SuggestionConfidence float64  `json:"suggestion_confidence"`
	Signals              []string `json:"signals"`
}

// CategorySuggestion decodes the flag's details as a category suggestion.
// It returns false when the flag has a different reason or the payload has
// no suggested category.
func (f PriceFlag) CategorySuggestion() (CategorySuggestion, bool) {
	if f.Reason != ReasonCategorySuggestion || f.Details == nil {
		return CategorySuggestion{}, false
	}
	var cs CategorySuggestion
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cs,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return CategorySuggestion{}, false
	}
	if err := dec.Decode(f.Details); err != nil {
		return CategorySuggestion{}, false
	}
	if cs.SuggestedCategory == "" {
		return CategorySuggestion{}, false
	}
	return cs, true
}
