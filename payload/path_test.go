package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	path := ParsePath("order.items[].sku")

	assert.Equal(t, Path{
		{Key: "order"},
		{Key: "items", Expand: true},
		{Key: "sku"},
	}, path)
	assert.Equal(t, "order.items[].sku", path.String())
	assert.Equal(t, []string{"order", "items", "sku"}, path.Keys())
}

func TestParsePath_Empty(t *testing.T) {
	assert.Empty(t, ParsePath(""))
}

func TestSetDeep_NestedObjects(t *testing.T) {
	root := Object{}
	SetDeep(root, "a.b.c", Number(5))

	assert.Equal(t, Object{"a": Object{"b": Object{"c": Number(5)}}}, root)
}

func TestSetDeep_ArrayExpansion(t *testing.T) {
	root := Object{}
	SetDeep(root, "items[].id", List{Number(1), Number(2)})

	assert.Equal(t, Object{
		"items": List{
			Object{"id": Number(1)},
			Object{"id": Number(2)},
		},
	}, root)
}

func TestSetDeep_ArrayExpansionLastSegmentAssignsList(t *testing.T) {
	root := Object{"tags": String("old")}
	SetDeep(root, "tags[]", String("solo"))

	assert.Equal(t, Object{"tags": List{String("solo")}}, root)
}

func TestSetDeep_SiblingMappingsShareArray(t *testing.T) {
	root := Object{}
	SetDeep(root, "legs[].from", List{String("HAN"), String("HAN")})
	SetDeep(root, "legs[].to", List{String("SGN"), String("AAA")})

	assert.Equal(t, Object{
		"legs": List{
			Object{"from": String("HAN"), "to": String("SGN")},
			Object{"from": String("HAN"), "to": String("AAA")},
		},
	}, root)
}

func TestSetDeep_ShorterSiblingLeavesTrailingElementsAlone(t *testing.T) {
	root := Object{}
	SetDeep(root, "legs[].from", List{String("A"), String("B"), String("C")})
	SetDeep(root, "legs[].to", List{String("X")})

	legs := root["legs"].(List)
	assert.Len(t, legs, 3)
	assert.Equal(t, Object{"from": String("A"), "to": String("X")}, legs[0])
	assert.Equal(t, Object{"from": String("C")}, legs[2])
}

func TestSetDeep_ScalarIsWrappedForExpansion(t *testing.T) {
	root := Object{}
	SetDeep(root, "items[].name", String("only"))

	assert.Equal(t, Object{"items": List{Object{"name": String("only")}}}, root)
}

func TestSetDeep_NestedExpansion(t *testing.T) {
	root := Object{}
	SetDeep(root, "groups[].members[].name", List{
		List{String("a"), String("b")},
		List{String("c")},
	})

	assert.Equal(t, Object{
		"groups": List{
			Object{"members": List{Object{"name": String("a")}, Object{"name": String("b")}}},
			Object{"members": List{Object{"name": String("c")}}},
		},
	}, root)
}

func TestSetDeep_ReplacesWrongShapes(t *testing.T) {
	root := Object{"a": String("scalar"), "items": String("not a list")}
	SetDeep(root, "a.b", Bool(true))
	SetDeep(root, "items[].x", List{Number(1)})

	assert.Equal(t, Object{"b": Bool(true)}, root["a"])
	assert.Equal(t, List{Object{"x": Number(1)}}, root["items"])
}

func TestSetDeep_EmptyPathIsNoop(t *testing.T) {
	root := Object{"keep": String("me")}
	SetDeep(root, "", String("ignored"))

	assert.Equal(t, Object{"keep": String("me")}, root)
}

func TestGetDeep(t *testing.T) {
	root := Object{
		"a": Object{"b": Number(3)},
		"items": List{
			Object{"id": Number(1)},
			String("skip"),
			Object{"id": Number(2)},
		},
	}

	value, ok := GetDeep(root, "a.b")
	assert.True(t, ok)
	assert.Equal(t, Number(3), value)

	value, ok = GetDeep(root, "items[].id")
	assert.True(t, ok)
	assert.Equal(t, List{Number(1), Number(2)}, value)

	_, ok = GetDeep(root, "a.missing")
	assert.False(t, ok)

	_, ok = GetDeep(root, "a.b.c")
	assert.False(t, ok)

	_, ok = GetDeep(root, "")
	assert.False(t, ok)
}
