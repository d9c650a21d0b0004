package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Name == "" || cfg.Version == "" {
		t.Error("DefaultConfig() must carry name and version")
	}
	if cfg.EffectiveMode() != negotiation.ModeNeutral {
		t.Errorf("EffectiveMode() = %v, want neutral", cfg.EffectiveMode())
	}
	if cfg.Storage.Backend != BackendCSV {
		t.Errorf("Storage.Backend = %q, want csv", cfg.Storage.Backend)
	}
	if cfg.Rephrase.Enabled {
		t.Error("rephrase must be off by default")
	}

	if errs := NewValidator().Validate(cfg); errs.HasErrors() {
		t.Errorf("DefaultConfig() must validate, got %v", errs)
	}
}

func TestExperimentConfig_EffectivePolicy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.EffectivePolicy(); got.ListPrice != 1000 {
		t.Errorf("EffectivePolicy().ListPrice = %d, want the default 1000", got.ListPrice)
	}

	custom := negotiation.DefaultPolicy()
	custom.ListPrice = 1200
	custom.ReservationPrice = 1100
	cfg.Policy = &custom
	if got := cfg.EffectivePolicy(); got.ListPrice != 1200 {
		t.Errorf("EffectivePolicy().ListPrice = %d, want the override 1200", got.ListPrice)
	}
}

func TestExperimentConfig_EffectiveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		want negotiation.Mode
	}{
		{"neutral", negotiation.ModeNeutral},
		{"power", negotiation.ModePower},
		{"", negotiation.ModeNeutral},
		{"bogus", negotiation.ModeNeutral},
	}
	for _, tt := range tests {
		cfg := ExperimentConfig{Mode: tt.mode}
		if got := cfg.EffectiveMode(); got != tt.want {
			t.Errorf("EffectiveMode(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestDuration_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := Duration(90 * time.Second)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"1m30s"` {
		t.Errorf("Marshal() = %s, want \"1m30s\"", data)
	}

	var back Duration
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Duration() != 90*time.Second {
		t.Errorf("round trip = %v, want 1m30s", back.Duration())
	}
}

func TestDuration_UnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()

	var d Duration
	if err := json.Unmarshal([]byte(`"soon"`), &d); err == nil {
		t.Error("Unmarshal(\"soon\") must fail")
	}
}
