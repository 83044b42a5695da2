package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lawnchairsociety/procworld/internal/database"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.DataDir != "" {
		t.Errorf("expected embedded data by default, got %q", cfg.DataDir)
	}
	if cfg.Store.Driver != database.DriverNone {
		t.Errorf("expected no store by default, got %q", cfg.Store.Driver)
	}
	if !cfg.Generation.PregenerateAdjacent || cfg.Generation.MaxTemplateDepth != 10 {
		t.Errorf("unexpected generation defaults %+v", cfg.Generation)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/worldgen.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil || cfg.Generation.MaxTemplateDepth != 10 {
		t.Fatalf("expected default config for missing file, got %+v", cfg)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "worldgen.yaml")

	content := `
static_rooms: data/rooms.yaml
store:
  driver: redis
  redis:
    addr: localhost:6379
    ttl: 30m
generation:
  pregenerate_adjacent: false
  max_template_depth: 6
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StaticRooms != "data/rooms.yaml" {
		t.Errorf("static rooms = %q", cfg.StaticRooms)
	}
	if cfg.Store.Driver != database.DriverRedis || cfg.Store.Redis.Addr != "localhost:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Redis.TTL != 30*time.Minute {
		t.Errorf("redis ttl = %v", cfg.Store.Redis.TTL)
	}
	if cfg.Generation.PregenerateAdjacent || cfg.Generation.MaxTemplateDepth != 6 {
		t.Errorf("generation = %+v", cfg.Generation)
	}
	// Keys the file omits keep their defaults
	if cfg.Store.Postgres.Port != 5432 {
		t.Errorf("postgres port default lost: %d", cfg.Store.Postgres.Port)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "worldgen.yaml")
	if err := os.WriteFile(configPath, []byte("store: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected a parse error")
	}
	if cfg == nil || cfg.Store.Driver != database.DriverNone {
		t.Errorf("expected defaults on parse error, got %+v", cfg)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PROCWORLD_STORE_DRIVER", "sqlite")
	t.Setenv("PROCWORLD_STORE_SQLITE_PATH", "/tmp/rooms.db")
	t.Setenv("PROCWORLD_STORE_REDIS_TTL", "1h")
	t.Setenv("PROCWORLD_PREGENERATE", "false")
	t.Setenv("PROCWORLD_MAX_TEMPLATE_DEPTH", "4")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Driver != database.DriverSQLite || cfg.Store.SQLitePath != "/tmp/rooms.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Redis.TTL != time.Hour {
		t.Errorf("redis ttl = %v", cfg.Store.Redis.TTL)
	}
	if cfg.Generation.PregenerateAdjacent || cfg.Generation.MaxTemplateDepth != 4 {
		t.Errorf("generation = %+v", cfg.Generation)
	}
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("PROCWORLD_MAX_TEMPLATE_DEPTH", "deep")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected an error for a non-numeric depth")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.yaml")
	if err := os.WriteFile(file, []byte("x: 1"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		modify  func(*WorldConfig)
		wantErr string
	}{
		{"defaults", func(c *WorldConfig) {}, ""},
		{"data dir", func(c *WorldConfig) { c.DataDir = dir }, ""},
		{"zero depth", func(c *WorldConfig) { c.Generation.MaxTemplateDepth = 0 }, "max_template_depth"},
		{"missing data dir", func(c *WorldConfig) { c.DataDir = filepath.Join(dir, "missing") }, "data_dir"},
		{"data dir is a file", func(c *WorldConfig) { c.DataDir = file }, "not a directory"},
		{"unknown driver", func(c *WorldConfig) { c.Store.Driver = "mongo" }, "store"},
		{"sqlite without path", func(c *WorldConfig) { c.Store.Driver = database.DriverSQLite }, "sqlite_path"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}
