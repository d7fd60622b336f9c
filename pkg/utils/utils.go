// Package utils holds small helpers shared by the CLIs and the HTTP API.
package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects a JSON schema from any config struct and
// returns it as a JSON string. Struct fields drive the schema through their
// json and jsonschema tags.
func GetSchemaFromConfig(config any) (string, error) {
	schema := jsonschema.Reflect(config)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
