package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific work unit.
	// This ensures gate removal and sampling produce identical results for
	// the same (run, stage, work-unit) combination even under parallel
	// execution.
	Stream(ctx context.Context, runID, stageName, workKey string, baseSeed int64) (*rand.Rand, error)
}
