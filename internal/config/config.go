package config

import (
	"os"
	"strconv"

	"qramverify/internal/errors"
)

// Config represents the complete harness configuration
type Config struct {
	Sweep    SweepConfig
	Output   OutputConfig
	Database DatabaseConfig
	Workers  WorkerConfig
}

// SweepConfig holds the experiment sweep parameters
type SweepConfig struct {
	ScenarioID  string
	MinQubits   int
	MaxQubits   int
	Percentage  float64
	InPlace     bool
	Repetitions int
	Seed        int64
}

// OutputConfig holds artifact output settings
type OutputConfig struct {
	Directory string
	WriteCSV  bool
	WriteXLSX bool
}

// DatabaseConfig holds the optional run-ledger database settings
type DatabaseConfig struct {
	URL string
}

// WorkerConfig holds parallel fan-out settings
type WorkerConfig struct {
	BasisStateWorkers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sweep: SweepConfig{
			ScenarioID:  getEnvOrDefault("SCENARIO_ID", "1"),
			MinQubits:   getEnvIntOrDefault("MIN_QUBITS", 2),
			MaxQubits:   getEnvIntOrDefault("MAX_QUBITS", 3),
			Percentage:  getEnvFloatOrDefault("REMOVAL_PERCENTAGE", 0.2),
			InPlace:     getEnvBoolOrDefault("REMOVE_INPLACE", true),
			Repetitions: getEnvIntOrDefault("REPETITIONS", 10000),
			Seed:        int64(getEnvIntOrDefault("SEED", 0)),
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "results"),
			WriteCSV:  getEnvBoolOrDefault("WRITE_CSV", true),
			WriteXLSX: getEnvBoolOrDefault("WRITE_XLSX", false),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Workers: WorkerConfig{
			BasisStateWorkers: getEnvIntOrDefault("BASIS_WORKERS", 1),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sweep.Percentage < 0 || config.Sweep.Percentage > 1 {
		return errors.ConfigInvalid("REMOVAL_PERCENTAGE must be in [0,1]")
	}
	if config.Sweep.Repetitions <= 0 {
		return errors.ConfigInvalid("REPETITIONS must be positive")
	}
	if config.Sweep.MinQubits < 2 {
		return errors.ConfigInvalid("MIN_QUBITS must be at least 2")
	}
	if config.Sweep.MaxQubits < config.Sweep.MinQubits {
		return errors.ConfigInvalid("MAX_QUBITS must be >= MIN_QUBITS")
	}
	if config.Output.Directory == "" {
		return errors.ConfigInvalid("OUTPUT_DIR must not be empty")
	}
	if config.Workers.BasisStateWorkers < 1 {
		return errors.ConfigInvalid("BASIS_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
