package mutation

import (
	"math"
	"math/rand"
	"sort"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// Plan records which gates a removal mutation selected. Removed positions
// refer to the pre-removal gate ordering and are pairwise distinct.
type Plan struct {
	Kind     circuit.GateKind `json:"kind"`
	Fraction float64          `json:"fraction"`
	Eligible int              `json:"eligible"`
	Removed  []int            `json:"removed"`
}

// Count returns the number of gates the plan removes.
func (p Plan) Count() int {
	return len(p.Removed)
}

// IsEmpty reports whether the plan removes nothing.
func (p Plan) IsEmpty() bool {
	return len(p.Removed) == 0
}

// Remove deletes round(fraction × N) uniformly chosen gates of the given
// kind from the circuit, where N is the count of eligible gates in execution
// order. The draw is without replacement.
//
// With inPlace true the given circuit is mutated and returned; with inPlace
// false the original is left untouched and a mutated copy is returned. Both
// modes produce identical gate sequences for the same random draw.
//
// A nil rng falls back to an unseeded source, so unseeded calls may yield a
// different plan each time.
func Remove(c *circuit.Circuit, kind circuit.GateKind, fraction float64, inPlace bool, rng *rand.Rand) (*circuit.Circuit, Plan, error) {
	if fraction < 0.0 || fraction > 1.0 {
		return nil, Plan{}, core.NewInvalidFractionError(fraction)
	}
	plan := Plan{Kind: kind, Fraction: fraction}

	positions := c.PositionsOf(kind)
	plan.Eligible = len(positions)

	target := c
	if !inPlace {
		target = c.Clone()
	}

	count := int(math.Round(fraction * float64(plan.Eligible)))
	if plan.Eligible == 0 || count == 0 {
		return target, plan, nil
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	for _, idx := range rng.Perm(plan.Eligible)[:count] {
		plan.Removed = append(plan.Removed, positions[idx])
	}
	sort.Ints(plan.Removed)

	target.RemoveAt(plan.Removed)
	return target, plan, nil
}
