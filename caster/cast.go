// Package caster converts raw cell text into typed payload values and splits
// delimited cells into lists. Nothing here returns an error: malformed input
// degrades to the target type's zero value.
package caster

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// CastValue converts raw into dataType. Lists, objects and null pass through
// unchanged; anything else is treated as text and trimmed first.
func CastValue(raw payload.Value, dataType types.DataType) payload.Value {
	if payload.IsNull(raw) {
		return raw
	}
	if payload.IsComposite(raw) {
		return raw
	}

	text := strings.TrimSpace(payload.Text(raw))

	switch dataType {
	case types.DataTypeNumber, types.DataTypeArrayNumber:
		return payload.Number(ParseNumber(text))
	case types.DataTypeBoolean:
		return payload.Bool(ParseBoolean(text))
	case types.DataTypeObject:
		if text == "" {
			return payload.Object{}
		}
		return parseJSONOr(text, payload.Object{})
	case types.DataTypeArrayObject:
		if text == "" {
			return payload.List{}
		}
		return parseJSONOr(text, payload.List{})
	default:
		return payload.String(text)
	}
}

// CastList casts every element of list independently.
func CastList(list payload.List, dataType types.DataType) payload.List {
	casted := make(payload.List, 0, len(list))
	for _, item := range list {
		casted = append(casted, CastValue(item, dataType))
	}
	return casted
}

// ParseNumber returns 0 for empty or unparseable text and never NaN or Inf.
func ParseNumber(text string) float64 {
	if text == "" {
		return 0
	}
	number, err := cast.ToFloat64E(text)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0
	}
	return number
}

// ParseBoolean accepts "true" in any case and the literal "1".
func ParseBoolean(text string) bool {
	return strings.EqualFold(text, "true") || text == "1"
}

func parseJSONOr(text string, fallback payload.Value) payload.Value {
	value, err := payload.Parse([]byte(text))
	if err != nil {
		return fallback
	}
	return value
}
