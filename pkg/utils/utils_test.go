package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

// sampleConfig is a representative config struct for schema reflection.
type sampleConfig struct {
	DataPath    string   `json:"data_path" jsonschema:"description=Path to the bar series"`
	Granularity string   `json:"granularity" jsonschema:"enum=daily,enum=minute"`
	Balance     float64  `json:"balance"`
	Kinds       []string `json:"kinds,omitempty"`
}

type nestedConfig struct {
	ID     string       `json:"id"`
	Config sampleConfig `json:"config"`
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigSimple() {
	schema, err := GetSchemaFromConfig(sampleConfig{})

	suite.NoError(err)
	suite.NotEmpty(schema)

	// Verify it's valid JSON
	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)

	// Schema uses $ref to reference definitions in $defs
	suite.Contains(result, "$schema")
	suite.Contains(result, "$ref")
	suite.Contains(result, "$defs")
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigNested() {
	schema, err := GetSchemaFromConfig(nestedConfig{})

	suite.NoError(err)
	suite.NotEmpty(schema)

	var result map[string]interface{}
	err = json.Unmarshal([]byte(schema), &result)
	suite.NoError(err)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigPointer() {
	schema, err := GetSchemaFromConfig(&sampleConfig{})

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigEmptyStruct() {
	type emptyConfig struct{}

	schema, err := GetSchemaFromConfig(emptyConfig{})

	suite.NoError(err)
	suite.NotEmpty(schema)
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigPrimitiveTypes() {
	for _, value := range []any{"string", 42, true, 3.14} {
		schema, err := GetSchemaFromConfig(value)
		suite.NoError(err)
		suite.NotEmpty(schema)
	}
}

func (suite *UtilsTestSuite) TestGetSchemaFromConfigCollections() {
	schema, err := GetSchemaFromConfig([]sampleConfig{})
	suite.NoError(err)
	suite.NotEmpty(schema)

	schema, err = GetSchemaFromConfig(map[string]sampleConfig{})
	suite.NoError(err)
	suite.NotEmpty(schema)
}
