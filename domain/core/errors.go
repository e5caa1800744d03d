package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Run setup errors
	ErrUnknownScenario = errors.New("unknown decomposition scenario")
	ErrInvalidFraction = errors.New("removal fraction outside [0,1]")
	ErrInvalidQubits   = errors.New("qubit count below supported minimum")
	ErrInvalidState    = errors.New("initial state must consist of 0s and 1s")
	ErrStateLength     = errors.New("initial state length must equal qubit count")

	// Execution errors
	ErrSimulationFailure = errors.New("simulation engine rejected circuit")
	ErrInvalidRepetition = errors.New("repetition count must be positive")

	// Persistence errors
	ErrOutputWrite = errors.New("result artifact write failed")
)

// Error constructors with context
func NewUnknownScenarioError(id string) error {
	return fmt.Errorf("%w: %q (supported IDs: 1, 2, 3)", ErrUnknownScenario, id)
}

func NewInvalidFractionError(fraction float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidFraction, fraction)
}

func NewSimulationError(cause error) error {
	return fmt.Errorf("%w: %v", ErrSimulationFailure, cause)
}

func NewOutputWriteError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, cause)
}

// Error checking helpers
func IsSetupError(err error) bool {
	return errors.Is(err, ErrUnknownScenario) ||
		errors.Is(err, ErrInvalidFraction) ||
		errors.Is(err, ErrInvalidQubits) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateLength)
}

func IsSimulationError(err error) bool {
	return errors.Is(err, ErrSimulationFailure)
}

func IsOutputWriteError(err error) bool {
	return errors.Is(err, ErrOutputWrite)
}
