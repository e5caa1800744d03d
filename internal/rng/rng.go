package rng

import (
	"context"
	"math/rand"
)

// Adapter implements ports.RNGPort with deterministic derived streams.
type Adapter struct{}

// NewAdapter creates an RNG adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed ^ int64(hashString(name)))), nil
}

// Stream creates a deterministic RNG stream for a specific work unit.
// Identical (runID, stageName, workKey, baseSeed) always yield the same
// stream, so parallel workers stay reproducible.
func (r *Adapter) Stream(ctx context.Context, runID, stageName, workKey string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if runID != "" {
		seed += int64(hashString(runID))
	}
	if stageName != "" {
		seed += int64(hashString(stageName))
	}
	if workKey != "" {
		seed += int64(hashString(workKey))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding (djb2)
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}
