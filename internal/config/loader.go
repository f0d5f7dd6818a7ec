package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the working dir
const FileName = ".fieldfence.yml"

// Config is the parsed .fieldfence.yml
type Config struct {
	Version  string         `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`

	// Messages overrides the default validation messages.
	// Recognized keys: not_null, check, unique, foreign_key, referenced_by.
	Messages map[string]string `yaml:"messages"`

	Features FeaturesConfig `yaml:"features"`
}

// DatabaseConfig holds the connection settings
type DatabaseConfig struct {
	// ConnectionString wins over the individual fields when set
	ConnectionString string `yaml:"connection_string"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int32  `yaml:"max_connections"`
	MinConns int32  `yaml:"min_connections"`
}

// FeaturesConfig toggles optional behavior
type FeaturesConfig struct {
	// SplitCompositeFields expands composite-constraint errors into one
	// error per participating column
	SplitCompositeFields bool `yaml:"split_composite_fields"`
}

// Loader reads project configuration from a working directory
type Loader struct {
	workDir  string
	filePath string
}

// NewLoader creates a loader rooted at workDir
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:  workDir,
		filePath: filepath.Join(workDir, FileName),
	}
}

// Load reads and parses the configuration file
func (l *Loader) Load() (*Config, error) {
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", l.filePath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", l.filePath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.filePath, err)
	}

	return &cfg, nil
}

// Exists reports whether the configuration file is present
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.filePath)
	return err == nil
}
