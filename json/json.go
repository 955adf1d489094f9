package json

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type IJsonClient interface {
	Export(value any, fileName string) error
	ImportDocument(filePath string) (any, error)
	Decode(document any, target any) error
	CleanFiles(fileNames []string)
}

type JsonClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewJsonClient(workingFolderPath string, logger *logrus.Logger) *JsonClient {
	return &JsonClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

func isYaml(fileName string) bool {
	extension := strings.ToLower(filepath.Ext(fileName))
	return extension == ".yaml" || extension == ".yml"
}

// Export writes value into the working folder as JSON, or as YAML when the
// file name says so.
func (jsonClient *JsonClient) Export(value any, fileName string) error {
	var content []byte
	var err error
	if isYaml(fileName) {
		content, err = jsonClient.toYaml(value)
	} else {
		content, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", fileName, err)
	}

	filePath := fileName
	if !filepath.IsAbs(fileName) {
		filePath = filepath.Join(jsonClient.WorkingFolderPath, fileName)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filePath, err)
	}
	jsonClient.Logger.Debugf("Wrote %s", filePath)
	return nil
}

// toYaml goes through JSON first so struct json tags drive the YAML keys.
func (jsonClient *JsonClient) toYaml(value any) ([]byte, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(encoded, &generic); err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ImportDocument reads a JSON or YAML file into generic maps and slices.
func (jsonClient *JsonClient) ImportDocument(filePath string) (any, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filePath, err)
	}

	var document any
	if isYaml(filePath) {
		err = yaml.Unmarshal(content, &document)
	} else {
		err = json.Unmarshal(content, &document)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return document, nil
}

// Decode copies a generic document into a typed target through its json tags.
func (jsonClient *JsonClient) Decode(document any, target any) error {
	encoded, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

func (jsonClient *JsonClient) CleanFiles(fileNames []string) {
	for _, fileName := range fileNames {
		filePath := filepath.Join(jsonClient.WorkingFolderPath, fileName)
		if _, err := os.Stat(filePath); err == nil {
			jsonClient.Logger.Debugf("File %s already exists, it will be deleted", filePath)
			if err := os.Remove(filePath); err != nil {
				jsonClient.Logger.Warnf("Could not delete %s: %v", filePath, err)
			}
		}
	}
}
