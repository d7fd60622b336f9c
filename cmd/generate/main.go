package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
)

const (
	schemaName       = "run-config.json"
	schemaDir        = "./config"
	sampleConfigName = "run-config.yaml"
)

// validatePaths checks that both output paths are set.
func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}

// validateSchemaName checks the schema file name the sample config will
// reference.
func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

// getSchemaReference returns the yaml-language-server header line that links
// a sample config to its schema.
func getSchemaReference(name string) string {
	return "# yaml-language-server: $schema=" + name + "\n"
}

// generateSampleConfig writes a starter run configuration next to the
// schema. An existing file is never overwritten.
func generateSampleConfig(cfg config.RunConfig, sampleConfigPath, name string) error {
	if _, err := os.Stat(sampleConfigPath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(name)), yamlBytes...)

	if err := os.WriteFile(sampleConfigPath, yamlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	return nil
}

func main() {
	cfg := config.EmptyRunConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		log.Fatalf("Failed to generate schema: %v", err)
	}

	schemaPath := filepath.Join(schemaDir, schemaName)
	sampleConfigPath := filepath.Join(schemaDir, sampleConfigName)

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		log.Fatalf("Invalid paths: %v", err)
	}

	if err := validateSchemaName(schemaName); err != nil {
		log.Fatalf("Invalid schema name: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		log.Fatalf("Failed to write schema to file: %v", err)
	}

	if err := generateSampleConfig(cfg, sampleConfigPath, schemaName); err != nil {
		log.Fatalf("Failed to generate sample config: %v", err)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)
}
