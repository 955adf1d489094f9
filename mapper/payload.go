// Package mapper builds one request body per data row from a list of field mappings.
package mapper

import (
	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

type IPayloadClient interface {
	ConstructPayload(row types.Row, mappings []types.FieldMapping) payload.Object
}

type PayloadClient struct {
	Logger *logrus.Logger
}

func NewPayloadClient(logger *logrus.Logger) *PayloadClient {
	return &PayloadClient{
		Logger: logger,
	}
}

// ConstructPayload applies every mapping to row in declaration order and
// returns a fresh object. Later mappings win when two write the same path.
func (payloadClient *PayloadClient) ConstructPayload(row types.Row, mappings []types.FieldMapping) payload.Object {
	root := payload.Object{}

	for index, mapping := range mappings {
		raw, ok := ResolveRawValue(row, mapping)
		if !ok {
			payloadClient.Logger.Tracef("Skipping mapping %d (%s): no column value and no default", index, mapping.JsonPath)
			continue
		}

		if usesStructuredItems(mapping) {
			items := BuildStructuredItems(raw, mapping)
			payloadClient.Logger.Tracef("Mapping %d (%s): built %d structured items", index, mapping.JsonPath, len(items))
			payload.SetDeep(root, mapping.JsonPath, items)
			continue
		}

		var finalValue payload.Value = payload.String(raw)
		if mapping.Transformation.IsEnabled() {
			finalValue = ApplyTransformation(raw, mapping.Transformation)
		}

		payload.SetDeep(root, mapping.JsonPath, CastForMapping(finalValue, mapping.DataType))
	}

	return root
}
