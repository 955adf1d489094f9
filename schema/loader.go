package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/hcl"
	"github.com/quocvan1999/auto-api-pusher/json"
	"github.com/quocvan1999/auto-api-pusher/types"
)

type ISchemaClient interface {
	Load(filePath string) (*types.Schema, error)
	Save(schema types.Schema, fileName string) error
}

type SchemaClient struct {
	JsonClient json.IJsonClient
	HclClient  hcl.IHclClient
	Logger     *logrus.Logger
}

func NewSchemaClient(jsonClient json.IJsonClient, hclClient hcl.IHclClient, logger *logrus.Logger) *SchemaClient {
	return &SchemaClient{
		JsonClient: jsonClient,
		HclClient:  hclClient,
		Logger:     logger,
	}
}

func isHcl(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".hcl")
}

// Load reads a schema file. JSON and YAML documents are validated against the
// embedded mapping schema; HCL files are checked by their block structure.
func (schemaClient *SchemaClient) Load(filePath string) (*types.Schema, error) {
	if isHcl(filePath) {
		return schemaClient.HclClient.ReadSchema(filePath)
	}

	document, err := schemaClient.JsonClient.ImportDocument(filePath)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(document); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	schema := &types.Schema{}
	if err := schemaClient.JsonClient.Decode(document, schema); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	schemaClient.Logger.Debugf("Loaded %d mappings from %s", len(schema.Mappings), filePath)
	return schema, nil
}

func (schemaClient *SchemaClient) Save(schema types.Schema, fileName string) error {
	if isHcl(fileName) {
		return schemaClient.HclClient.WriteSchema(schema, fileName)
	}
	return schemaClient.JsonClient.Export(schema, fileName)
}
