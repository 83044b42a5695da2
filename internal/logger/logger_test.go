package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	want := DefaultConfig()
	if config != want {
		t.Errorf("LoadConfig(missing) = %+v, want defaults %+v", config, want)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	yamlContent := `logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: test.log
  file_max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "test.log" {
		t.Errorf("FilePath = %q, want %q", config.FilePath, "test.log")
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	// Keys the file leaves out keep their defaults
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled lost its default")
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logging: [oops"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config != DefaultConfig() {
		t.Errorf("malformed file did not fall back to defaults: %+v", config)
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestEnvVarInvalidBool(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "maybe")
	if _, err := LoadConfig(""); err == nil {
		t.Error("expected error for unparsable LOG_FILE_ENABLED")
	}
}

func TestSetOutputFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "INFO")
	defer Disable()

	Info("Test message", "key", "value")
	Debug("This should not appear")

	output := buf.String()
	if !strings.Contains(output, "Test message") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Output missing structured field: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "DEBUG")
	defer Disable()

	Debug("cache miss", "room", "proc_1_2_0")
	Info("tables loaded", "count", 8)
	Warning("missing template", "name", "weather")
	Error("store closed")

	output := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=\"cache miss\" room=proc_1_2_0",
		"level=INFO msg=\"tables loaded\" count=8",
		"level=WARN msg=\"missing template\" name=weather",
		"level=ERROR msg=\"store closed\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestDisabledLoggerIsSilent(t *testing.T) {
	Disable()
	// Must not panic with no logger installed
	Info("nobody hears this")
	Warning("or this")
	if Logger() == nil {
		t.Error("Logger() returned nil while disabled")
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestFanoutHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewJSONHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger = slog.New(&fanoutHandler{handlers: []slog.Handler{h1, h2}})
	defer Disable()

	Info("info only", "field", "value")
	Warning("both outputs")

	if !strings.Contains(buf1.String(), "info only") || !strings.Contains(buf1.String(), "both outputs") {
		t.Errorf("text handler output: %s", buf1.String())
	}
	if strings.Contains(buf2.String(), "info only") {
		t.Error("warn-level handler received an info record")
	}
	if !strings.Contains(buf2.String(), `"msg":"both outputs"`) {
		t.Errorf("json handler output: %s", buf2.String())
	}
}

func TestFanoutHandlerContinuesPastFailure(t *testing.T) {
	var buf bytes.Buffer
	broken := failingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)}
	good := slog.NewTextHandler(&buf, nil)
	h := &fanoutHandler{handlers: []slog.Handler{broken, good}}

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0)
	err := h.Handle(context.Background(), r)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Handle error = %v, want disk full", err)
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Error("second handler skipped after first failed")
	}
}
