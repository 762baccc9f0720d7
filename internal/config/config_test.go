package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scenario != DefaultScenario {
		t.Errorf("scenario = %q, want %q", cfg.Scenario, DefaultScenario)
	}
	if cfg.Trials != DefaultTrials {
		t.Errorf("trials = %d, want %d", cfg.Trials, DefaultTrials)
	}
	if cfg.Inputs == nil {
		t.Error("inputs map is nil")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario = "projectile"
	cfg.Trials = 500
	cfg.Seed = 99
	cfg.Inputs["speed"] = InputSpec{Dist: "normal", Mean: 25, Stddev: 2}

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Scenario != "projectile" || loaded.Trials != 500 || loaded.Seed != 99 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if got := loaded.Inputs["speed"]; got != cfg.Inputs["speed"] {
		t.Errorf("input spec = %+v, want %+v", got, cfg.Inputs["speed"])
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scenario: sumprod\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scenario != "sumprod" {
		t.Errorf("scenario = %q, want sumprod", cfg.Scenario)
	}
	if cfg.Trials != DefaultTrials {
		t.Errorf("trials = %d, want default %d", cfg.Trials, DefaultTrials)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInputSpecSampler(t *testing.T) {
	tests := []struct {
		name    string
		spec    InputSpec
		wantErr bool
	}{
		{"normal", InputSpec{Dist: "normal", Mean: 0, Stddev: 1}, false},
		{"uniform", InputSpec{Dist: "uniform", Min: 0, Max: 1}, false},
		{"exponential", InputSpec{Dist: "exponential", Rate: 2}, false},
		{"lognormal", InputSpec{Dist: "lognormal", Mean: 0, Stddev: 1}, false},
		{"normal zero stddev", InputSpec{Dist: "normal", Stddev: 0}, true},
		{"uniform inverted bounds", InputSpec{Dist: "uniform", Min: 2, Max: 1}, true},
		{"exponential zero rate", InputSpec{Dist: "exponential"}, true},
		{"unknown", InputSpec{Dist: "cauchy"}, true},
		{"missing", InputSpec{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := tt.spec.Sampler(rand.NewSource(1))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Sampler failed: %v", err)
			}
			v, err := sampler()
			if err != nil {
				t.Fatalf("draw failed: %v", err)
			}
			if !v.IsScalar() || !v.IsValid() {
				t.Errorf("bad draw %v", v)
			}
		})
	}
}
