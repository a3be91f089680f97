package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".supportchat")
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvAPIKey, "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint %q, got %q", DefaultEndpoint, cfg.Endpoint)
	}
	if cfg.TimeoutSeconds != 0 {
		t.Errorf("Expected no timeout by default, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Verbose {
		t.Error("Expected Verbose to be false")
	}
	if cfg.TUITheme != "support" {
		t.Errorf("Expected default theme 'support', got %q", cfg.TUITheme)
	}
}

func TestAgentIDIsSet(t *testing.T) {
	if AgentID == "" {
		t.Fatal("AgentID must have a built-in default")
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	dir := useTempConfigDir(t)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("GetConfigDir() = %s, want %s", got, dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %s, want default", cfg.Endpoint)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Endpoint = "https://agents.example.com/chat"
	cfg.TimeoutSeconds = 45
	cfg.Verbose = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	configPath := filepath.Join(dir, "config.json")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded.Endpoint != cfg.Endpoint {
		t.Errorf("Endpoint = %s, want %s", loaded.Endpoint, cfg.Endpoint)
	}
	if loaded.TimeoutSeconds != 45 {
		t.Errorf("TimeoutSeconds = %d, want 45", loaded.TimeoutSeconds)
	}
	if !loaded.Verbose {
		t.Error("Verbose should round-trip")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := useTempConfigDir(t)
	_ = os.MkdirAll(dir, 0o700)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Error("defaults should be returned on parse error")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := useTempConfigDir(t)
	_ = os.MkdirAll(dir, 0o700)
	data, _ := json.Marshal(Config{Endpoint: "https://file.example.com", APIKey: "from-file"})
	_ = os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600)

	t.Setenv(EnvEndpoint, "https://env.example.com")
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != "https://env.example.com" {
		t.Errorf("Endpoint = %s, want env override", cfg.Endpoint)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %s, want env override", cfg.APIKey)
	}

	stored, err := ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig() returned error: %v", err)
	}
	if stored.Endpoint != "https://file.example.com" {
		t.Errorf("ReadConfig() Endpoint = %s, want file value", stored.Endpoint)
	}
}

func TestGetLogPath(t *testing.T) {
	dir := useTempConfigDir(t)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "supportchat.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	custom := DefaultConfig()
	custom.LogFile = "/tmp/custom.log"
	path, _ = GetLogPath(custom)
	if path != "/tmp/custom.log" {
		t.Errorf("GetLogPath() = %s, want custom path", path)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"endpoint", "https://agents.example.com", false, func(c Config) bool { return c.Endpoint == "https://agents.example.com" }},
		{"endpoint", "ftp://nope", true, nil},
		{"timeout_seconds", "30", false, func(c Config) bool { return c.TimeoutSeconds == 30 }},
		{"timeout_seconds", "-1", true, nil},
		{"timeout_seconds", "soon", true, nil},
		{"verbose", "true", false, func(c Config) bool { return c.Verbose }},
		{"verbose", "maybe", true, nil},
		{"log_level", "debug", false, func(c Config) bool { return c.LogLevel == "debug" }},
		{"log_level", "loud", true, nil},
		{"markdown.enable_emoji", "false", false, func(c Config) bool { return !c.Markdown.EnableEmoji }},
		{"agent_id", "abc", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := Set(&cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%s, %s) did not apply", tt.key, tt.value)
			}
		})
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("Keys() not sorted: %v", keys)
		}
	}
}
