package hcl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/quocvan1999/auto-api-pusher/types"
)

type IHclClient interface {
	WriteSchema(schema types.Schema, fileName string) error
	ReadSchema(filePath string) (*types.Schema, error)
}

type HclClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewHclClient(workingFolderPath string, logger *logrus.Logger) *HclClient {
	return &HclClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

type schemaFile struct {
	Request  *requestBlock  `hcl:"request,block"`
	Mappings []mappingBlock `hcl:"mapping,block"`
}

type requestBlock struct {
	Method  string            `hcl:"method,optional"`
	URL     string            `hcl:"url"`
	Headers map[string]string `hcl:"headers,optional"`
}

type mappingBlock struct {
	JsonPath       string               `hcl:"json_path"`
	DataType       string               `hcl:"data_type"`
	CsvHeader      string               `hcl:"csv_header,optional"`
	DefaultValue   string               `hcl:"default_value,optional"`
	Transformation *transformationBlock `hcl:"transformation,block"`
	InternalFields []internalFieldBlock `hcl:"internal_field,block"`
}

type transformationBlock struct {
	Enabled       bool   `hcl:"enabled,optional"`
	Separator     string `hcl:"separator,optional"`
	ItemSeparator string `hcl:"item_separator,optional"`
	ItemIndex     int    `hcl:"item_index,optional"`
}

type internalFieldBlock struct {
	Key      string `hcl:"key"`
	Index    int    `hcl:"index"`
	DataType string `hcl:"data_type"`
}

func (hclClient *HclClient) WriteSchema(schema types.Schema, fileName string) error {
	hclFilePath := fileName
	if !filepath.IsAbs(fileName) {
		hclFilePath = filepath.Join(hclClient.WorkingFolderPath, fileName)
	}
	hclFile := hclwrite.NewEmptyFile()
	body := hclFile.Body()

	requestBody := body.AppendNewBlock("request", nil).Body()
	requestBody.SetAttributeValue("method", cty.StringVal(schema.Request.Method))
	requestBody.SetAttributeValue("url", cty.StringVal(schema.Request.URL))
	if len(schema.Request.Headers) > 0 {
		requestBody.SetAttributeValue("headers", headersValue(schema.Request.Headers))
	}
	body.AppendNewline()

	for _, mapping := range schema.Mappings {
		mappingBody := body.AppendNewBlock("mapping", nil).Body()
		mappingBody.SetAttributeValue("json_path", cty.StringVal(mapping.JsonPath))
		mappingBody.SetAttributeValue("data_type", cty.StringVal(string(mapping.DataType)))
		if mapping.CsvHeader != "" {
			mappingBody.SetAttributeValue("csv_header", cty.StringVal(mapping.CsvHeader))
		}
		if mapping.DefaultValue != "" {
			mappingBody.SetAttributeValue("default_value", cty.StringVal(mapping.DefaultValue))
		}

		if transformation := mapping.Transformation; transformation != nil {
			transformationBody := mappingBody.AppendNewBlock("transformation", nil).Body()
			transformationBody.SetAttributeValue("enabled", cty.BoolVal(transformation.Enabled))
			if transformation.Separator != "" {
				transformationBody.SetAttributeValue("separator", cty.StringVal(transformation.Separator))
			}
			if transformation.ItemSeparator != "" {
				transformationBody.SetAttributeValue("item_separator", cty.StringVal(transformation.ItemSeparator))
				transformationBody.SetAttributeValue("item_index", cty.NumberIntVal(int64(transformation.ItemIndex)))
			}
		}

		for _, field := range mapping.InternalFields {
			fieldBody := mappingBody.AppendNewBlock("internal_field", nil).Body()
			fieldBody.SetAttributeValue("key", cty.StringVal(field.Key))
			fieldBody.SetAttributeValue("index", cty.NumberIntVal(int64(field.Index)))
			fieldBody.SetAttributeValue("data_type", cty.StringVal(string(field.DataType)))
		}
		body.AppendNewline()
	}

	if err := os.WriteFile(hclFilePath, hclFile.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", hclFilePath, err)
	}

	hclClient.Logger.Infof("HCL schema file %s written to: %s", fileName, hclFilePath)
	return nil
}

func headersValue(headers map[string]string) cty.Value {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string]cty.Value, len(headers))
	for _, key := range keys {
		values[key] = cty.StringVal(headers[key])
	}
	return cty.MapVal(values)
}

func (hclClient *HclClient) ReadSchema(filePath string) (*types.Schema, error) {
	var file schemaFile
	if err := hclsimple.DecodeFile(filePath, nil, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}

	schema := &types.Schema{}
	if file.Request != nil {
		schema.Request = types.RequestTarget{
			Method:  file.Request.Method,
			URL:     file.Request.URL,
			Headers: file.Request.Headers,
		}
	}

	for _, block := range file.Mappings {
		mapping := types.FieldMapping{
			JsonPath:     block.JsonPath,
			DataType:     types.DataType(block.DataType),
			CsvHeader:    block.CsvHeader,
			DefaultValue: block.DefaultValue,
		}
		if block.Transformation != nil {
			mapping.Transformation = &types.Transformation{
				Enabled:       block.Transformation.Enabled,
				Separator:     block.Transformation.Separator,
				ItemSeparator: block.Transformation.ItemSeparator,
				ItemIndex:     block.Transformation.ItemIndex,
			}
		}
		for _, field := range block.InternalFields {
			mapping.InternalFields = append(mapping.InternalFields, types.InternalField{
				Key:      field.Key,
				Index:    field.Index,
				DataType: types.DataType(field.DataType),
			})
		}
		schema.Mappings = append(schema.Mappings, mapping)
	}

	hclClient.Logger.Debugf("Read %d mappings from %s", len(schema.Mappings), filePath)
	return schema, nil
}
