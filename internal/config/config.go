// Package config loads the tool's configuration from ~/.jobsearch and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = ".jobsearch"
	configFileName = "config.yaml"

	apiKeyEnv = "SERPAPI_API_KEY"
)

// Config holds application configuration
type Config struct {
	APIKey  string `yaml:"api_key"` // Prefer SERPAPI_API_KEY env var
	DataDir string `yaml:"data_dir"`
	Debug   bool   `yaml:"debug"`
}

// Load reads config.yaml if present and applies environment overrides. A
// missing config file is not an error; a .env file in the working directory
// is picked up first.
func Load() (*Config, error) {
	// Best effort; most users set the key in their shell instead.
	_ = godotenv.Load()

	cfg := &Config{}

	path, err := configPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %v", path, err)
			}
		}
	}

	if key := os.Getenv(apiKeyEnv); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName, configFileName), nil
}
