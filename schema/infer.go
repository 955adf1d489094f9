// Package schema derives, loads, validates and persists field mapping schemas.
package schema

import (
	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// InferMappings flattens a request body template into one mapping per leaf.
// Keys are visited in lexical order. Scalar leaves keep their template value
// as the default so an unmapped field still reproduces the original request.
func InferMappings(template payload.Object) []types.FieldMapping {
	mappings := []types.FieldMapping{}
	inferObject(template, "", &mappings)
	return mappings
}

func inferObject(object payload.Object, prefix string, mappings *[]types.FieldMapping) {
	for _, key := range object.SortedKeys() {
		path := joinPath(prefix, key)
		value := object[key]

		if nested, ok := value.(payload.Object); ok && len(nested) > 0 {
			inferObject(nested, path, mappings)
			continue
		}
		*mappings = append(*mappings, inferLeaf(path, value))
	}
}

func inferLeaf(path string, value payload.Value) types.FieldMapping {
	mapping := types.FieldMapping{JsonPath: path}

	switch typed := value.(type) {
	case payload.List:
		mapping.DataType = InferListType(typed)
		switch mapping.DataType {
		case types.DataTypeArrayObject:
			mapping.Transformation = &types.Transformation{
				Enabled:       true,
				Separator:     types.DefaultSeparator,
				ItemSeparator: types.DefaultItemSeparator,
			}
			mapping.InternalFields = InferInternalFields(typed[0].(payload.Object))
		default:
			mapping.Transformation = &types.Transformation{Enabled: true, Separator: types.DefaultSeparator}
		}
	case payload.Object:
		mapping.DataType = types.DataTypeObject
		mapping.DefaultValue = payload.Text(typed)
	case payload.Number:
		mapping.DataType = types.DataTypeNumber
		mapping.DefaultValue = payload.Text(typed)
	case payload.Bool:
		mapping.DataType = types.DataTypeBoolean
		mapping.DefaultValue = payload.Text(typed)
	default:
		mapping.DataType = types.DataTypeString
		mapping.DefaultValue = payload.Text(typed)
	}
	return mapping
}

// InferListType: all numbers -> array_number, objects -> array_object, anything else -> array_string.
func InferListType(list payload.List) types.DataType {
	if len(list) == 0 {
		return types.DataTypeArrayString
	}
	if _, ok := list[0].(payload.Object); ok {
		return types.DataTypeArrayObject
	}
	for _, item := range list {
		if _, ok := item.(payload.Number); !ok {
			return types.DataTypeArrayString
		}
	}
	return types.DataTypeArrayNumber
}

// InferInternalFields numbers the leaves of a sample element in lexical path order.
func InferInternalFields(sample payload.Object) []types.InternalField {
	leaves := InferMappings(sample)
	fields := make([]types.InternalField, 0, len(leaves))
	for index, leaf := range leaves {
		dataType := leaf.DataType
		if dataType.IsArray() {
			dataType = types.DataTypeString
		}
		fields = append(fields, types.InternalField{
			Key:      leaf.JsonPath,
			Index:    index,
			DataType: dataType,
		})
	}
	return fields
}

func joinPath(prefix string, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
