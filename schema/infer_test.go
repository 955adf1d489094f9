package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

func TestInferMappings(t *testing.T) {
	template := payload.Object{
		"customer": payload.Object{
			"name":   payload.String("Ann"),
			"age":    payload.Number(30),
			"active": payload.Bool(true),
		},
		"meta":   payload.Object{},
		"scores": payload.List{payload.Number(1), payload.Number(2)},
		"tags":   payload.List{payload.String("a"), payload.Number(2)},
		"legs": payload.List{
			payload.Object{"from": payload.String("HAN"), "to": payload.String("SGN"), "stops": payload.Number(0)},
		},
	}

	mappings := InferMappings(template)

	assert.Equal(t, []types.FieldMapping{
		{JsonPath: "customer.active", DataType: types.DataTypeBoolean, DefaultValue: "true"},
		{JsonPath: "customer.age", DataType: types.DataTypeNumber, DefaultValue: "30"},
		{JsonPath: "customer.name", DataType: types.DataTypeString, DefaultValue: "Ann"},
		{
			JsonPath:       "legs",
			DataType:       types.DataTypeArrayObject,
			Transformation: &types.Transformation{Enabled: true, Separator: ",", ItemSeparator: "*"},
			InternalFields: []types.InternalField{
				{Key: "from", Index: 0, DataType: types.DataTypeString},
				{Key: "stops", Index: 1, DataType: types.DataTypeNumber},
				{Key: "to", Index: 2, DataType: types.DataTypeString},
			},
		},
		{JsonPath: "meta", DataType: types.DataTypeObject, DefaultValue: "{}"},
		{JsonPath: "scores", DataType: types.DataTypeArrayNumber, Transformation: &types.Transformation{Enabled: true, Separator: ","}},
		{JsonPath: "tags", DataType: types.DataTypeArrayString, Transformation: &types.Transformation{Enabled: true, Separator: ","}},
	}, mappings)
}

func TestInferListType(t *testing.T) {
	assert.Equal(t, types.DataTypeArrayString, InferListType(payload.List{}))
	assert.Equal(t, types.DataTypeArrayNumber, InferListType(payload.List{payload.Number(1)}))
	assert.Equal(t, types.DataTypeArrayObject, InferListType(payload.List{payload.Object{}}))
	assert.Equal(t, types.DataTypeArrayString, InferListType(payload.List{payload.Bool(true)}))
}

func TestInferInternalFields_NestedKeys(t *testing.T) {
	fields := InferInternalFields(payload.Object{
		"name": payload.Object{"first": payload.String("A"), "last": payload.String("B")},
		"tags": payload.List{payload.String("x")},
	})

	assert.Equal(t, []types.InternalField{
		{Key: "name.first", Index: 0, DataType: types.DataTypeString},
		{Key: "name.last", Index: 1, DataType: types.DataTypeString},
		{Key: "tags", Index: 2, DataType: types.DataTypeString},
	}, fields)
}
