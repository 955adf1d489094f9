package types

import "strings"

type DataType string

const (
	DataTypeString      DataType = "string"
	DataTypeNumber      DataType = "number"
	DataTypeBoolean     DataType = "boolean"
	DataTypeObject      DataType = "object"
	DataTypeArrayString DataType = "array_string"
	DataTypeArrayNumber DataType = "array_number"
	DataTypeArrayObject DataType = "array_object"
)

func (dataType DataType) IsValidDataType() bool {
	switch dataType {
	case DataTypeString,
		DataTypeNumber,
		DataTypeBoolean,
		DataTypeObject,
		DataTypeArrayString,
		DataTypeArrayNumber,
		DataTypeArrayObject:
		return true
	default:
		return false
	}
}

// IsArray reports whether values of this type are always written as lists.
func (dataType DataType) IsArray() bool {
	return strings.HasPrefix(string(dataType), "array_")
}

const (
	DefaultSeparator     = ","
	DefaultItemSeparator = "*"
)

// FieldMapping declares how one output JSON field is derived from a row.
type FieldMapping struct {
	JsonPath       string          `json:"jsonPath" yaml:"jsonPath" mapstructure:"jsonPath"`
	DataType       DataType        `json:"dataType" yaml:"dataType" mapstructure:"dataType"`
	CsvHeader      string          `json:"csvHeader,omitempty" yaml:"csvHeader,omitempty" mapstructure:"csvHeader"`
	DefaultValue   string          `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" mapstructure:"defaultValue"`
	Transformation *Transformation `json:"transformation,omitempty" yaml:"transformation,omitempty" mapstructure:"transformation"`
	InternalFields []InternalField `json:"internalFields,omitempty" yaml:"internalFields,omitempty" mapstructure:"internalFields"`
}

type Transformation struct {
	Enabled       bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Separator     string `json:"separator,omitempty" yaml:"separator,omitempty" mapstructure:"separator"`
	ItemSeparator string `json:"itemSeparator,omitempty" yaml:"itemSeparator,omitempty" mapstructure:"itemSeparator"`
	ItemIndex     int    `json:"itemIndex,omitempty" yaml:"itemIndex,omitempty" mapstructure:"itemIndex"`
}

// InternalField picks token Index of a structured array item and writes it at Key.
type InternalField struct {
	Key      string   `json:"key" yaml:"key" mapstructure:"key"`
	Index    int      `json:"index" yaml:"index" mapstructure:"index"`
	DataType DataType `json:"dataType" yaml:"dataType" mapstructure:"dataType"`
}

// SeparatorOrDefault is safe to call on a nil transformation.
func (transformation *Transformation) SeparatorOrDefault() string {
	if transformation == nil || transformation.Separator == "" {
		return DefaultSeparator
	}
	return transformation.Separator
}

func (transformation *Transformation) ItemSeparatorOrDefault() string {
	if transformation == nil || transformation.ItemSeparator == "" {
		return DefaultItemSeparator
	}
	return transformation.ItemSeparator
}

func (transformation *Transformation) IsEnabled() bool {
	return transformation != nil && transformation.Enabled
}

// Schema is the document persisted by the seed command and read by every other command.
type Schema struct {
	Request  RequestTarget  `json:"request" yaml:"request" mapstructure:"request"`
	Mappings []FieldMapping `json:"mappings" yaml:"mappings" mapstructure:"mappings"`
}
