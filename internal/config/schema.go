package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// ConfigSchema generates the JSON schema for the configuration file.
func ConfigSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/docktree/docktree/config.schema.json"
	schema.Title = "dockctl configuration"
	schema.Description = "Configuration schema for dockctl, the docking layout inspector"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the config schema next to the config file.
func GenerateSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := ConfigSchema()
	if err != nil {
		return "", err
	}

	schemaFile := filepath.Join(configDir, "config.schema.json")
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("write schema file: %w", err)
	}
	return schemaFile, nil
}
