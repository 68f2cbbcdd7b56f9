package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smazurov/gpioblink/internal/logging"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, path string, opts ...WatcherOption[logging.Config]) *Watcher[logging.Config] {
	t.Helper()
	opts = append([]WatcherOption[logging.Config]{WithDebounce[logging.Config](50 * time.Millisecond)}, opts...)
	w := NewConfigWatcher(path, ReadLoggingConfig, newTestLogger(), opts...)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	// Give the watch loop time to settle.
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestConfigWatcher_ReloadsLoggingLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	w := NewConfigWatcher(path, ReadLoggingConfig, newTestLogger(), WithDebounce[logging.Config](50*time.Millisecond))
	received := make(chan logging.Config, 1)
	w.OnReload(func(cfg logging.Config) { received <- cfg })
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	writeConfig(t, path, "[logging]\nlevel = \"debug\"\ncontrol = \"warn\"\n")

	select {
	case cfg := <-received:
		if cfg.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Level)
		}
		if cfg.Modules["control"] != "warn" {
			t.Errorf("Modules[control] = %q, want warn", cfg.Modules["control"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestConfigWatcher_RenameOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	w := NewConfigWatcher(path, ReadLoggingConfig, newTestLogger(), WithDebounce[logging.Config](50*time.Millisecond))
	received := make(chan logging.Config, 4)
	w.OnReload(func(cfg logging.Config) { received <- cfg })
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	tmp := filepath.Join(dir, "gpioblink.toml.tmp")
	writeConfig(t, tmp, "[logging]\nlevel = \"error\"\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-received:
		if cfg.Level != "error" {
			t.Errorf("Level = %q, want error", cfg.Level)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after rename")
	}
}

func TestConfigWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	var calls atomic.Int32
	w := startWatcher(t, path)
	w.OnReload(func(logging.Config) { calls.Add(1) })

	writeConfig(t, filepath.Join(dir, "other.toml"), "[logging]\nlevel = \"debug\"\n")
	time.Sleep(300 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("handler called %d times for an unrelated file, want 0", got)
	}
}

func TestConfigWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	var calls atomic.Int32
	w := startWatcher(t, path, WithDebounce[logging.Config](200*time.Millisecond))
	w.OnReload(func(logging.Config) { calls.Add(1) })

	for _, level := range []string{"debug", "warn", "error", "debug", "info"} {
		writeConfig(t, path, "[logging]\nlevel = \""+level+"\"\n")
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(600 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("handler called %d times, want 1", got)
	}
}

func TestConfigWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	var kept, removed atomic.Int32
	w := startWatcher(t, path)
	w.OnReload(func(logging.Config) { kept.Add(1) })
	unsubscribe := w.OnReload(func(logging.Config) { removed.Add(1) })
	unsubscribe()

	writeConfig(t, path, "[logging]\nlevel = \"debug\"\n")
	time.Sleep(400 * time.Millisecond)

	if kept.Load() == 0 {
		t.Error("remaining handler was not called")
	}
	if removed.Load() != 0 {
		t.Error("unsubscribed handler was called")
	}
}

func TestConfigWatcher_ErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpioblink.toml")
	writeConfig(t, path, "[logging]\nlevel = \"info\"\n")

	errCh := make(chan error, 1)
	var reloads atomic.Int32
	w := startWatcher(t, path, WithErrorHandler[logging.Config](func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}))
	w.OnReload(func(logging.Config) { reloads.Add(1) })

	writeConfig(t, path, "[logging\nlevel = ")

	select {
	case err := <-errCh:
		if err == nil {
			t.Error("error handler received nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
	if reloads.Load() != 0 {
		t.Error("handler should not run when the file fails to parse")
	}
}

func TestConfigWatcher_StopWithoutStart(t *testing.T) {
	w := NewConfigWatcher("gpioblink.toml", func(string) (logging.Config, error) {
		return logging.Config{}, errors.New("unused")
	}, newTestLogger())
	if err := w.Stop(); err != nil {
		t.Errorf("Stop before Start = %v, want nil", err)
	}
}

func TestConfigWatcher_StartMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gpioblink.toml")
	w := NewConfigWatcher(path, ReadLoggingConfig, newTestLogger())
	if err := w.Start(); err == nil {
		w.Stop()
		t.Fatal("Start should fail when the directory does not exist")
	}
}
