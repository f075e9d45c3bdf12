// Package config provides a unified configuration system for wfcheck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the complete wfcheck configuration.
type Config struct {
	// Checker configuration
	Checker CheckerConfig `yaml:"checker" json:"checker"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Metadata
	Version string `yaml:"version" json:"version"`
}

// CheckerConfig contains static-checker tuning settings.
type CheckerConfig struct {
	// StrictMode controls whether the default assignability pass is
	// strict (every source union branch must land in the sink, with a
	// non-strict-only match reported as a warning) rather than non-strict
	// (one non-null branch suffices and passes without a warning).
	StrictMode bool `yaml:"strict_mode" json:"strict_mode" default:"true"`

	// MaxTypeDepth bounds the assignability oracle's recursion over
	// nested array/record/union types.
	MaxTypeDepth int `yaml:"max_type_depth" json:"max_type_depth" default:"250"`

	// MaxCycleDepth bounds the step-dependency DFS's traversal path
	// length before it gives up rather than looping forever on a
	// pathological graph.
	MaxCycleDepth int `yaml:"max_cycle_depth" json:"max_cycle_depth" default:"4096"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" default:"info" env:"WFCHECK_LOG_LEVEL"`
	Format      string `yaml:"format" json:"format" default:"text"`
	Output      string `yaml:"output" json:"output" default:"stderr"`
	EnableColor bool   `yaml:"enable_color" json:"enable_color" default:"true"`
}

// Manager manages configuration loading and validation.
type Manager struct {
	config      *Config
	configPath  string
	mu          sync.RWMutex
	changeHooks []func(*Config)
}

// NewManager creates a new configuration manager holding the defaults.
func NewManager() *Manager {
	return &Manager{
		config:      DefaultConfig(),
		changeHooks: make([]func(*Config), 0),
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Checker: CheckerConfig{
			StrictMode:    true,
			MaxTypeDepth:  250,
			MaxCycleDepth: 4096,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "text",
			Output:      "stderr",
			EnableColor: true,
		},
		Version: "1.0",
	}
}

// Load loads configuration from a file, starting from DefaultConfig and
// overlaying whatever the file sets.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expandedPath, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	m.config = cfg
	m.configPath = expandedPath
	m.notifyChangeHooks(cfg)

	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	configCopy := *m.config
	return &configCopy
}

// OnChange registers a callback invoked after every successful Load.
func (m *Manager) OnChange(hook func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changeHooks = append(m.changeHooks, hook)
}

func (m *Manager) notifyChangeHooks(cfg *Config) {
	for _, hook := range m.changeHooks {
		hook(cfg)
	}
}

// expandPath expands ~ and environment variables in paths.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
