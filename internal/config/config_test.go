package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Checker.StrictMode {
		t.Error("expected strict mode to default to true")
	}
	if cfg.Checker.MaxTypeDepth != 250 {
		t.Errorf("expected max type depth 250, got %d", cfg.Checker.MaxTypeDepth)
	}
	if cfg.Checker.MaxCycleDepth != 4096 {
		t.Errorf("expected max cycle depth 4096, got %d", cfg.Checker.MaxCycleDepth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Version != "1.0" {
		t.Errorf("expected version '1.0', got '%s'", cfg.Version)
	}
}

func TestNewManager(t *testing.T) {
	manager := NewManager()
	cfg := manager.Get()
	if cfg == nil {
		t.Fatal("expected config to be available")
	}
	if !cfg.Checker.StrictMode {
		t.Error("expected default manager config to be strict")
	}
}

func TestManagerLoadOverlaysDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
version: "1.0"
checker:
  strict_mode: false
  max_type_depth: 50
logging:
  level: "debug"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	manager := NewManager()
	if err := manager.Load(configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	cfg := manager.Get()
	if cfg.Checker.StrictMode {
		t.Error("expected strict mode overridden to false")
	}
	if cfg.Checker.MaxTypeDepth != 50 {
		t.Errorf("expected max type depth overridden to 50, got %d", cfg.Checker.MaxTypeDepth)
	}
	if cfg.Checker.MaxCycleDepth != 4096 {
		t.Errorf("expected unset max cycle depth to keep its default 4096, got %d", cfg.Checker.MaxCycleDepth)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level overridden to 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestManagerLoadRejectsInvalidConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bad_config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: \"verbose\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	manager := NewManager()
	if err := manager.Load(configPath); err == nil {
		t.Fatal("expected an invalid logging level to fail validation")
	}
}

func TestOnChangeNotifiesHooks(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	manager := NewManager()
	notified := false
	manager.OnChange(func(cfg *Config) { notified = true })

	if err := manager.Load(configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !notified {
		t.Error("expected OnChange hook to be invoked after Load")
	}
}
