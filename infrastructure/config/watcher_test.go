package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/config"
)

func writeConfig(t *testing.T, path, mode string) {
	t.Helper()

	content := `
name: haggle
version: "1.0"
mode: ` + mode + `
storage:
  backend: memory
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestWatcher_LoadsInitialConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "haggle.yaml")
	writeConfig(t, path, "power")

	w, err := NewWatcher(path, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if got := w.Current().Mode; got != "power" {
		t.Errorf("Current().Mode = %q, want power", got)
	}
}

func TestWatcher_RejectsMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), nil, nil); err == nil {
		t.Error("NewWatcher() must fail on a missing file")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "haggle.yaml")
	writeConfig(t, path, "neutral")

	changed := make(chan *config.ExperimentConfig, 1)
	w, err := NewWatcher(path, nil, func(cfg *config.ExperimentConfig) {
		changed <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	writeConfig(t, path, "power")

	select {
	case cfg := <-changed:
		if cfg.Mode != "power" {
			t.Errorf("reloaded Mode = %q, want power", cfg.Mode)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	if got := w.Current().Mode; got != "power" {
		t.Errorf("Current().Mode = %q, want power after reload", got)
	}
}

func TestWatcher_KeepsPreviousOnInvalidReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "haggle.yaml")
	writeConfig(t, path, "neutral")

	w, err := NewWatcher(path, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("mode: [broken"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Give the debounced reload time to run and be rejected.
	time.Sleep(300 * time.Millisecond)

	if got := w.Current().Mode; got != "neutral" {
		t.Errorf("Current().Mode = %q, want the previous config kept", got)
	}

	cancel()
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}
