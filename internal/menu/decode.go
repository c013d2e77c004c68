package menu

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// FromMap decodes a raw pipeline item into an Item. Decoding is
// best-effort and weakly typed: unknown keys are ignored, JSON numbers
// coerce to the target field's type, and fields that fail to decode stay
// at their zero values.
func FromMap(raw map[string]any) *Item {
	var it Item
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &it,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       proposedFixHook,
	})
	if err != nil {
		return &it
	}
	_ = dec.Decode(raw)
	return &it
}

// FromMaps decodes a slice of raw pipeline items.
func FromMaps(raws []map[string]any) []*Item {
	items := make([]*Item, 0, len(raws))
	for _, raw := range raws {
		items = append(items, FromMap(raw))
	}
	return items
}

// proposedFixHook accepts the two wire shapes for a proposed fix: a bare
// string (name fix) or an object (category fix). Anything else becomes a
// zero fix, which the repair executor skips.
func proposedFixHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(ProposedFix{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ProposedFix{Name: v}, nil
	case map[string]any:
		var f ProposedFix
		if s, ok := v["name"].(string); ok {
			f.Name = s
		}
		if s, ok := v["category"].(string); ok {
			f.Category = s
		}
		return f, nil
	default:
		return ProposedFix{}, nil
	}
}
