package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .tokenspec/config.yaml.
type ProjectConfig struct {
	Version  string         `yaml:"version"`
	Strategy string         `yaml:"strategy"`
	Pattern  *PatternConfig `yaml:"pattern"`
	Include  []string       `yaml:"include"`
	Exclude  []string       `yaml:"exclude"`
	LogLevel string         `yaml:"log_level"`
	MCPLog   string         `yaml:"mcp_log"`
}

// PatternConfig pins the target naming pattern instead of detecting it.
type PatternConfig struct {
	Separator string `yaml:"separator"`
	Case      string `yaml:"case"`
}

// configPath is replaceable for testing.
var configPath = ".tokenspec/config.yaml"

// loadProjectConfig reads .tokenspec/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveString applies the fallback chain: explicit flag value, then the
// config file value, then the default.
func resolveString(flagValue, configValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return def
}
