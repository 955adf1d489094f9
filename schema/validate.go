package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed mapping-schema.json
var embeddedSchema []byte

const schemaURL = "https://auto-api-pusher.dev/schemas/mapping-schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaInitErr  error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		document, err := jsonschema.UnmarshalJSON(bytes.NewReader(embeddedSchema))
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, document); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}

		compiledSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to compile schema: %w", err)
		}
	})
	return compiledSchema, schemaInitErr
}

// ValidateDocument checks a decoded JSON or YAML schema document before it is
// decoded into types. YAML documents are normalised through JSON so numbers
// reach the validator in the form it expects.
func ValidateDocument(document any) error {
	compiled, err := getCompiledSchema()
	if err != nil {
		return err
	}

	encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(document)
	if err != nil {
		return fmt.Errorf("normalising schema document: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("normalising schema document: %w", err)
	}

	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("schema document is invalid: %w", err)
	}
	return nil
}
