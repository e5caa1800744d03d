package config

import "testing"

func clearHarnessEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCENARIO_ID", "MIN_QUBITS", "MAX_QUBITS", "REMOVAL_PERCENTAGE",
		"REMOVE_INPLACE", "REPETITIONS", "SEED", "OUTPUT_DIR",
		"WRITE_CSV", "WRITE_XLSX", "DATABASE_URL", "BASIS_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults tests the built-in configuration defaults
func TestLoadDefaults(t *testing.T) {
	clearHarnessEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sweep.ScenarioID != "1" {
		t.Errorf("Expected default scenario 1, got %s", cfg.Sweep.ScenarioID)
	}
	if cfg.Sweep.MinQubits != 2 || cfg.Sweep.MaxQubits != 3 {
		t.Errorf("Unexpected default bounds: %d..%d", cfg.Sweep.MinQubits, cfg.Sweep.MaxQubits)
	}
	if cfg.Sweep.Percentage != 0.2 {
		t.Errorf("Expected default percentage 0.2, got %v", cfg.Sweep.Percentage)
	}
	if cfg.Sweep.Repetitions != 10000 {
		t.Errorf("Expected default repetitions 10000, got %d", cfg.Sweep.Repetitions)
	}
	if cfg.Output.Directory != "results" || !cfg.Output.WriteCSV || cfg.Output.WriteXLSX {
		t.Errorf("Unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Expected no default database URL, got %s", cfg.Database.URL)
	}
	if cfg.Workers.BasisStateWorkers != 1 {
		t.Errorf("Expected 1 default worker, got %d", cfg.Workers.BasisStateWorkers)
	}
}

// TestLoadFromEnvironment tests environment variable overrides
func TestLoadFromEnvironment(t *testing.T) {
	clearHarnessEnv(t)
	t.Setenv("SCENARIO_ID", "3")
	t.Setenv("MIN_QUBITS", "3")
	t.Setenv("MAX_QUBITS", "5")
	t.Setenv("REMOVAL_PERCENTAGE", "0.75")
	t.Setenv("REMOVE_INPLACE", "false")
	t.Setenv("REPETITIONS", "500")
	t.Setenv("SEED", "99")
	t.Setenv("OUTPUT_DIR", "/tmp/sweeps")
	t.Setenv("WRITE_XLSX", "true")
	t.Setenv("DATABASE_URL", "postgres://localhost/qram")
	t.Setenv("BASIS_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sweep.ScenarioID != "3" || cfg.Sweep.MinQubits != 3 || cfg.Sweep.MaxQubits != 5 {
		t.Errorf("Sweep bounds not applied: %+v", cfg.Sweep)
	}
	if cfg.Sweep.Percentage != 0.75 || cfg.Sweep.InPlace || cfg.Sweep.Repetitions != 500 || cfg.Sweep.Seed != 99 {
		t.Errorf("Sweep values not applied: %+v", cfg.Sweep)
	}
	if cfg.Output.Directory != "/tmp/sweeps" || !cfg.Output.WriteXLSX {
		t.Errorf("Output values not applied: %+v", cfg.Output)
	}
	if cfg.Database.URL != "postgres://localhost/qram" {
		t.Errorf("Database URL not applied: %s", cfg.Database.URL)
	}
	if cfg.Workers.BasisStateWorkers != 8 {
		t.Errorf("Worker count not applied: %d", cfg.Workers.BasisStateWorkers)
	}
}

// TestLoadMalformedValuesFallBack tests that unparseable values keep defaults
func TestLoadMalformedValuesFallBack(t *testing.T) {
	clearHarnessEnv(t)
	t.Setenv("MIN_QUBITS", "two")
	t.Setenv("REMOVAL_PERCENTAGE", "lots")
	t.Setenv("REMOVE_INPLACE", "yep")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sweep.MinQubits != 2 || cfg.Sweep.Percentage != 0.2 || !cfg.Sweep.InPlace {
		t.Errorf("Malformed values should fall back to defaults: %+v", cfg.Sweep)
	}
}

// TestLoadValidation tests rejection of invalid configurations
func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"percentage above one", "REMOVAL_PERCENTAGE", "1.5"},
		{"negative percentage", "REMOVAL_PERCENTAGE", "-0.1"},
		{"zero repetitions", "REPETITIONS", "0"},
		{"single qubit", "MIN_QUBITS", "1"},
		{"inverted bounds", "MAX_QUBITS", "1"},
		{"zero workers", "BASIS_WORKERS", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearHarnessEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected validation error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
