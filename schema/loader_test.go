package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvan1999/auto-api-pusher/hcl"
	"github.com/quocvan1999/auto-api-pusher/json"
	"github.com/quocvan1999/auto-api-pusher/types"
)

func newTestSchemaClient(dir string) *SchemaClient {
	logger := logrus.New()
	return NewSchemaClient(json.NewJsonClient(dir, logger), hcl.NewHclClient(dir, logger), logger)
}

func testSchema() types.Schema {
	return types.Schema{
		Request: types.RequestTarget{Method: "POST", URL: "https://example.com/items"},
		Mappings: []types.FieldMapping{
			{JsonPath: "name", DataType: types.DataTypeString, CsvHeader: "Name"},
			{
				JsonPath:       "tags",
				DataType:       types.DataTypeArrayString,
				CsvHeader:      "Tags",
				Transformation: &types.Transformation{Enabled: true, Separator: "|"},
			},
		},
	}
}

func TestSchemaClient_SaveAndLoad(t *testing.T) {
	for _, fileName := range []string{"schema.json", "schema.yaml", "schema.hcl"} {
		t.Run(fileName, func(t *testing.T) {
			dir := t.TempDir()
			client := newTestSchemaClient(dir)

			require.NoError(t, client.Save(testSchema(), fileName))
			loaded, err := client.Load(filepath.Join(dir, fileName))
			require.NoError(t, err)

			assert.Equal(t, testSchema(), *loaded)
		})
	}
}

func TestSchemaClient_LoadRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	client := newTestSchemaClient(dir)
	filePath := filepath.Join(dir, "schema.yaml")
	content := "mappings:\n  - jsonPath: total\n    dataType: decimal\n"
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	_, err := client.Load(filePath)
	assert.ErrorContains(t, err, "invalid")
}

func TestValidateDocument(t *testing.T) {
	valid := map[string]any{
		"mappings": []any{
			map[string]any{
				"jsonPath":       "legs",
				"dataType":       "array_object",
				"internalFields": []any{map[string]any{"key": "from", "index": 0, "dataType": "string"}},
			},
		},
	}
	assert.NoError(t, ValidateDocument(valid))

	negativeIndex := map[string]any{
		"mappings": []any{
			map[string]any{
				"jsonPath":       "x",
				"dataType":       "string",
				"transformation": map[string]any{"enabled": true, "itemIndex": -1},
			},
		},
	}
	assert.Error(t, ValidateDocument(negativeIndex))

	assert.Error(t, ValidateDocument(map[string]any{}))
}
