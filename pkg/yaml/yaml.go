package yaml

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// LoadYAML loads a YAML file into the provided struct
func LoadYAML(path string, target interface{}) error {
	if path == "" {
		return fmt.Errorf("yaml path cannot be empty")
	}
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("yaml file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read yaml file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal yaml file %s: %w", path, err)
	}

	return nil
}

// SaveYAML saves a struct to a YAML file, creating parent directories as needed
func SaveYAML(path string, data interface{}) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal to yaml: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write yaml file %s: %w", path, err)
	}

	return nil
}
