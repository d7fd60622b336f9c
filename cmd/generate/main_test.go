package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
)

type GenerateCmdTestSuite struct {
	suite.Suite
	tempDir string
	prevDir string
}

func (suite *GenerateCmdTestSuite) SetupTest() {
	prevDir, err := os.Getwd()
	suite.Require().NoError(err)
	suite.prevDir = prevDir

	tempDir, err := os.MkdirTemp("", "generate-cmd-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir

	suite.Require().NoError(os.Chdir(tempDir))
}

func (suite *GenerateCmdTestSuite) TearDownTest() {
	suite.Require().NoError(os.Chdir(suite.prevDir))
	suite.Require().NoError(os.RemoveAll(suite.tempDir))
}

func (suite *GenerateCmdTestSuite) TestSchemaGeneration() {
	main()

	configDir := filepath.Join(suite.tempDir, "config")
	suite.True(dirExists(configDir), "config directory should exist")

	schemaPath := filepath.Join(configDir, schemaName)
	suite.True(fileExists(schemaPath), "schema file should exist")

	schemaContent, err := os.ReadFile(schemaPath)
	suite.Require().NoError(err)
	suite.Contains(string(schemaContent), "data_path")
	suite.Contains(string(schemaContent), "strategies")
}

func (suite *GenerateCmdTestSuite) TestSampleConfigGeneration() {
	main()

	samplePath := filepath.Join(suite.tempDir, "config", sampleConfigName)
	suite.True(fileExists(samplePath), "sample config file should exist")

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Contains(string(content), "# yaml-language-server: $schema="+schemaName)
	suite.Contains(string(content), "granularity: daily")
}

func (suite *GenerateCmdTestSuite) TestGenerateSampleConfigAlreadyExists() {
	cfg := config.EmptyRunConfig()
	samplePath := filepath.Join(suite.tempDir, "existing-config.yaml")

	originalContent := []byte("existing content")
	suite.Require().NoError(os.WriteFile(samplePath, originalContent, 0o644))

	suite.Require().NoError(generateSampleConfig(cfg, samplePath, "test-schema.json"))

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal(string(originalContent), string(content), "existing file should not be overwritten")
}

func (suite *GenerateCmdTestSuite) TestValidatePaths() {
	suite.NoError(validatePaths("/some/path/schema.json", "/some/path/config.yaml"))

	err := validatePaths("", "/some/path/config.yaml")
	suite.Error(err)
	suite.Contains(err.Error(), "schema path cannot be empty")

	err = validatePaths("/some/path/schema.json", "")
	suite.Error(err)
	suite.Contains(err.Error(), "sample config path cannot be empty")

	suite.Error(validatePaths("", ""))
}

func (suite *GenerateCmdTestSuite) TestValidateSchemaName() {
	suite.NoError(validateSchemaName("schema.json"))
	suite.NoError(validateSchemaName("my-schema-file.json"))

	err := validateSchemaName("")
	suite.Error(err)
	suite.Contains(err.Error(), "schema name cannot be empty")

	err = validateSchemaName("schema.txt")
	suite.Error(err)
	suite.Contains(err.Error(), "must have .json extension")

	suite.Error(validateSchemaName("schema"))
}

func (suite *GenerateCmdTestSuite) TestGetSchemaReference() {
	suite.Equal("# yaml-language-server: $schema=test-schema.json\n", getSchemaReference("test-schema.json"))
	suite.Equal("# yaml-language-server: $schema=\n", getSchemaReference(""))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)

	return !os.IsNotExist(err) && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return !os.IsNotExist(err) && !info.IsDir()
}

func TestGenerateCmdSuite(t *testing.T) {
	suite.Run(t, new(GenerateCmdTestSuite))
}
