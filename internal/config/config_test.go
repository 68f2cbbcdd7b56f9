package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// testOptions mirrors the shape of the command Options structs.
type testOptions struct {
	Config string

	PinRed       int      `toml:"pins.red" env:"PINS_RED"`
	PinWhite     int      `toml:"pins.white" env:"PINS_WHITE"`
	PollInterval string   `toml:"loop.poll_interval" env:"LOOP_POLL_INTERVAL"`
	Simulate     bool     `toml:"gpio.simulate" env:"GPIO_SIMULATE"`
	Programs     []string `toml:"programs.enabled" env:"PROGRAMS_ENABLED"`
	LoggingLevel string   `toml:"logging.level" env:"LOGGING_LEVEL"`
	Untagged     string
}

const sampleConfig = `
programs.enabled = ["color", "toggle"]

[pins]
red = 5
white = 6

[loop]
poll_interval = "20ms"

[gpio]
simulate = true

[logging]
level = "debug"
control = "warn"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gpioblink.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func defaults(path string) *testOptions {
	return &testOptions{
		Config:       path,
		PinRed:       14,
		PinWhite:     23,
		PollInterval: "10ms",
		LoggingLevel: "info",
		Untagged:     "kept",
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	opts := defaults(writeFile(t, sampleConfig))
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := &testOptions{
		Config:       opts.Config,
		PinRed:       5,
		PinWhite:     6,
		PollInterval: "20ms",
		Simulate:     true,
		Programs:     []string{"color", "toggle"},
		LoggingLevel: "debug",
		Untagged:     "kept",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("got %+v\nwant %+v", opts, want)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeFile(t, sampleConfig)
	t.Setenv("GPIOBLINK_PINS_RED", "7")
	t.Setenv("GPIOBLINK_PINS_WHITE", "26")
	t.Setenv("GPIOBLINK_PROGRAMS_ENABLED", "blink, toggle")

	opts := defaults(path)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&opts.PinRed, "pin-red", 14, "red pin")
	cmd.Flags().StringVar(&opts.PollInterval, "poll-interval", "10ms", "poll interval")
	if err := cmd.Flags().Set("pin-red", "9"); err != nil {
		t.Fatalf("Failed to set flag: %v", err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"CLI beats env and file", opts.PinRed, 9},
		{"env beats file", opts.PinWhite, 26},
		{"unchanged flag takes file", opts.PollInterval, "20ms"},
		{"env slice is split and trimmed", opts.Programs, []string{"blink", "toggle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	opts := defaults(filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("GPIOBLINK_GPIO_SIMULATE", "true")

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig with missing file = %v, want nil", err)
	}
	if opts.PinRed != 14 || opts.PollInterval != "10ms" {
		t.Errorf("defaults changed: %+v", opts)
	}
	if !opts.Simulate {
		t.Error("env var should still apply without a file")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"malformed TOML", "[pins\nred = ", nil, "failed to parse TOML"},
		{"wrong TOML type", "[pins]\nred = \"fourteen\"\n", nil, "pins.red"},
		{"bad env int", "", map[string]string{"GPIOBLINK_PINS_WHITE": "abc"}, "GPIOBLINK_PINS_WHITE"},
		{"bad env bool", "", map[string]string{"GPIOBLINK_GPIO_SIMULATE": "maybe"}, "GPIOBLINK_GPIO_SIMULATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			opts := defaults(writeFile(t, tt.content))
			err := LoadConfig(opts, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMalformedFileStillAppliesEnv(t *testing.T) {
	t.Setenv("GPIOBLINK_PINS_WHITE", "26")
	opts := defaults(writeFile(t, "[pins\nred = "))

	err := LoadConfig(opts, nil)
	if err == nil || !strings.Contains(err.Error(), "failed to parse TOML") {
		t.Fatalf("LoadConfig error = %v, want parse error", err)
	}
	if opts.PinWhite != 26 {
		t.Errorf("PinWhite = %d, want 26 from env", opts.PinWhite)
	}
	if opts.PinRed != 14 {
		t.Errorf("PinRed = %d, want default 14", opts.PinRed)
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := map[string]string{
		"Config":         "config",
		"PinRed":         "pin-red",
		"PinColorButton": "pin-color-button",
		"MetricsAddr":    "metrics-addr",
	}
	for in, want := range tests {
		if got := fieldNameToFlag(in); got != want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"pins": map[string]any{"red": int64(14)},
		"flat": "value",
	}

	tests := []struct {
		path string
		want any
	}{
		{"pins.red", int64(14)},
		{"flat", "value"},
		{"pins.green", nil},
		{"flat.child", nil},
		{"missing.key", nil},
	}
	for _, tt := range tests {
		if got := getNestedValue(data, tt.path); got != tt.want {
			t.Errorf("getNestedValue(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReadLoggingConfig(t *testing.T) {
	cfg, err := ReadLoggingConfig(writeFile(t, sampleConfig))
	if err != nil {
		t.Fatalf("ReadLoggingConfig failed: %v", err)
	}
	if cfg.Level != "debug" || cfg.Format != "text" {
		t.Errorf("got level=%q format=%q, want debug/text", cfg.Level, cfg.Format)
	}
	if !reflect.DeepEqual(cfg.Modules, map[string]string{"control": "warn"}) {
		t.Errorf("Modules = %v, want control=warn only", cfg.Modules)
	}

	if _, err := ReadLoggingConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("ReadLoggingConfig should fail for a missing file")
	}
}

func TestLoadLoggingConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.toml")} {
		cfg := LoadLoggingConfig(path)
		if cfg.Level != "info" || cfg.Format != "text" || len(cfg.Modules) != 0 {
			t.Errorf("LoadLoggingConfig(%q) = %+v, want info/text defaults", path, cfg)
		}
	}
}
