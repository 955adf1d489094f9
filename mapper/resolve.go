package mapper

import (
	"github.com/quocvan1999/auto-api-pusher/caster"
	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// ResolveRawValue picks the raw text for a mapping: the mapped column when the
// row has it, otherwise a non-empty default. ok is false when neither exists
// and the mapping must not write anything.
func ResolveRawValue(row types.Row, mapping types.FieldMapping) (string, bool) {
	if mapping.CsvHeader != "" {
		if value, exists := row[mapping.CsvHeader]; exists {
			return value, true
		}
	}
	if mapping.DefaultValue != "" {
		return mapping.DefaultValue, true
	}
	return "", false
}

// usesStructuredItems is true when an array_object cell is decomposed item by
// item instead of being parsed as JSON.
func usesStructuredItems(mapping types.FieldMapping) bool {
	return mapping.DataType == types.DataTypeArrayObject && mapping.CsvHeader != ""
}

// BuildStructuredItems turns "(HAN*SGN),(HAN*AAA)" into one object per item
// using the mapping's internal fields.
func BuildStructuredItems(raw string, mapping types.FieldMapping) payload.List {
	transformation := mapping.Transformation
	items := caster.SplitList(raw, transformation.SeparatorOrDefault())
	itemSeparator := transformation.ItemSeparatorOrDefault()

	objects := make(payload.List, 0, len(items))
	for _, item := range items {
		cleaned := caster.StripWrapping(item)
		object := payload.Object{}

		if len(mapping.InternalFields) == 0 {
			object["raw"] = payload.String(cleaned)
			objects = append(objects, object)
			continue
		}

		tokens := caster.SplitList(cleaned, itemSeparator)
		for _, field := range mapping.InternalFields {
			token := caster.TokenAt(tokens, field.Index)
			payload.SetDeep(object, field.Key, caster.CastValue(payload.String(token), field.DataType))
		}
		objects = append(objects, object)
	}
	return objects
}

// ApplyTransformation splits raw into a list of strings, optionally keeping
// only one positional token of every part.
func ApplyTransformation(raw string, transformation *types.Transformation) payload.List {
	parts := caster.SplitList(raw, transformation.SeparatorOrDefault())

	if transformation.ItemSeparator == "" {
		parts = caster.CompactList(parts)
		list := make(payload.List, 0, len(parts))
		for _, part := range parts {
			list = append(list, payload.String(part))
		}
		return list
	}

	list := make(payload.List, 0, len(parts))
	for _, part := range parts {
		tokens := caster.SplitList(caster.StripWrapping(part), transformation.ItemSeparator)
		list = append(list, payload.String(caster.TokenAt(tokens, transformation.ItemIndex)))
	}
	return list
}

// CastForMapping applies the generic casting rules: array types always produce
// lists, lists are cast element by element.
func CastForMapping(value payload.Value, dataType types.DataType) payload.Value {
	if dataType.IsArray() {
		if _, isList := value.(payload.List); !isList {
			value = payload.List{value}
		}
	}
	if list, isList := value.(payload.List); isList {
		return caster.CastList(list, dataType)
	}
	return caster.CastValue(value, dataType)
}
