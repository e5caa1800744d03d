package app

import (
	"fmt"

	"qramverify/domain/circuit"
)

// WorkUnit is one (qubit count, basis state) cell of the sweep grid. Units
// are fully independent and safe to run concurrently.
type WorkUnit struct {
	QubitCount int
	BasisState circuit.BasisState
}

// Key identifies the unit for RNG stream derivation and logging. Distinct
// units always have distinct keys, so parallel workers never share a removal
// or sampling stream.
func (w WorkUnit) Key() string {
	return fmt.Sprintf("n%d/%s", w.QubitCount, w.BasisState)
}

// PlanIteration lists the work units for one qubit count: every basis state
// of that width, in ascending binary order. Result records are emitted in
// this order regardless of completion order.
func PlanIteration(qubitCount int) []WorkUnit {
	states := circuit.EnumerateBasisStates(qubitCount)
	units := make([]WorkUnit, 0, len(states))
	for _, s := range states {
		units = append(units, WorkUnit{QubitCount: qubitCount, BasisState: s})
	}
	return units
}
