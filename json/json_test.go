package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestJsonClient_ExportImportJson(t *testing.T) {
	dir := t.TempDir()
	client := NewJsonClient(dir, logrus.New())

	require.NoError(t, client.Export(sample{Name: "a", Count: 2}, "out.json"))

	document, err := client.ImportDocument(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "a", "count": float64(2)}, document)

	var decoded sample
	require.NoError(t, client.Decode(document, &decoded))
	assert.Equal(t, sample{Name: "a", Count: 2}, decoded)
}

func TestJsonClient_ExportYamlUsesJsonTags(t *testing.T) {
	dir := t.TempDir()
	client := NewJsonClient(dir, logrus.New())

	require.NoError(t, client.Export(sample{Name: "b", Tags: []string{"x"}}, "out.yaml"))

	content, err := os.ReadFile(filepath.Join(dir, "out.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: b")
	assert.Contains(t, string(content), "- x")

	document, err := client.ImportDocument(filepath.Join(dir, "out.yaml"))
	require.NoError(t, err)
	var decoded sample
	require.NoError(t, client.Decode(document, &decoded))
	assert.Equal(t, "b", decoded.Name)
	assert.Equal(t, []string{"x"}, decoded.Tags)
}

func TestJsonClient_ImportDocumentErrors(t *testing.T) {
	dir := t.TempDir()
	client := NewJsonClient(dir, logrus.New())

	_, err := client.ImportDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{nope"), 0644))
	_, err = client.ImportDocument(broken)
	assert.Error(t, err)
}

func TestJsonClient_CleanFiles(t *testing.T) {
	dir := t.TempDir()
	client := NewJsonClient(dir, logrus.New())
	stale := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0644))

	client.CleanFiles([]string{"results.json", "absent.csv"})

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}
