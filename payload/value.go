// Package payload holds the JSON value tree request bodies are built in and
// the path accessor used to write into it.
package payload

import (
	"fmt"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (kind Kind) String() string {
	switch kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
}

// Value is one node of a JSON document. The concrete types below are the only
// implementations.
type Value interface {
	Kind() Kind
}

type (
	Null   struct{}
	Bool   bool
	Number float64
	String string
	List   []Value
	Object map[string]Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (List) Kind() Kind   { return KindList }
func (Object) Kind() Kind { return KindObject }

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsComposite is true for lists and objects, which casting passes through untouched.
func IsComposite(value Value) bool {
	switch value.(type) {
	case List, Object:
		return true
	default:
		return false
	}
}

// IsNull treats a missing Go value the same as an explicit JSON null.
func IsNull(value Value) bool {
	if value == nil {
		return true
	}
	_, ok := value.(Null)
	return ok
}

// Text renders a scalar the way it would appear in a spreadsheet cell.
func Text(value Value) string {
	switch typed := value.(type) {
	case nil, Null:
		return ""
	case Bool:
		return strconv.FormatBool(bool(typed))
	case Number:
		return strconv.FormatFloat(float64(typed), 'f', -1, 64)
	case String:
		return string(typed)
	case List, Object:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return ""
	}
}

// FromAny converts a decoded JSON/YAML document into a Value tree.
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Null{}
	case Value:
		return typed
	case bool:
		return Bool(typed)
	case float64:
		return Number(typed)
	case float32:
		return Number(typed)
	case int:
		return Number(typed)
	case int64:
		return Number(typed)
	case int32:
		return Number(typed)
	case uint64:
		return Number(typed)
	case jsoniter.Number:
		number, err := typed.Float64()
		if err != nil {
			return String(typed.String())
		}
		return Number(number)
	case string:
		return String(typed)
	case []any:
		list := make(List, 0, len(typed))
		for _, item := range typed {
			list = append(list, FromAny(item))
		}
		return list
	case map[string]any:
		object := make(Object, len(typed))
		for key, item := range typed {
			object[key] = FromAny(item)
		}
		return object
	case map[any]any:
		object := make(Object, len(typed))
		for key, item := range typed {
			object[fmt.Sprint(key)] = FromAny(item)
		}
		return object
	default:
		return String(fmt.Sprint(typed))
	}
}

// ToAny is the inverse of FromAny, producing plain Go values.
func ToAny(value Value) any {
	switch typed := value.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(typed)
	case Number:
		return float64(typed)
	case String:
		return string(typed)
	case List:
		list := make([]any, 0, len(typed))
		for _, item := range typed {
			list = append(list, ToAny(item))
		}
		return list
	case Object:
		object := make(map[string]any, len(typed))
		for key, item := range typed {
			object[key] = ToAny(item)
		}
		return object
	default:
		return nil
	}
}

// Parse decodes a JSON document into a Value tree.
func Parse(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return FromAny(raw), nil
}

func Marshal(value Value) ([]byte, error) {
	return json.Marshal(value)
}

func MarshalIndent(value Value) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}

// SortedKeys returns the keys of an object in lexical order.
func (object Object) SortedKeys() []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
