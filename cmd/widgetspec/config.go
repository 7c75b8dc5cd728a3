package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultConfigPath is where project settings are read from, relative to the
// working directory.
var defaultConfigPath = filepath.Join(".widgetspec", "config.yaml")

const defaultHTTPAddr = "127.0.0.1:8080"

// ProjectConfig holds the contents of .widgetspec/config.yaml.
type ProjectConfig struct {
	Version     string `yaml:"version"`
	CatalogPath string `yaml:"catalog_path"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	// LogFile receives one JSONL line per MCP tool call.
	LogFile  string `yaml:"log_file"`
	HTTPAddr string `yaml:"http_addr"`
	BaseURL  string `yaml:"base_url"`
}

// loadProjectConfig reads the config file at path.
// Returns an empty config (no error) if the file does not exist.
func loadProjectConfig(path string) (ProjectConfig, error) {
	var cfg ProjectConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// pick returns the first non-empty value: flag, then config file, then default.
func pick(flagValue, fileValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}
