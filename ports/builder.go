package ports

import (
	"qramverify/domain/circuit"
)

// BuilderPort constructs circuit instances. The construction algorithm is an
// external collaborator; the harness only relies on determinism: identical
// arguments must yield gate-for-gate identical circuits.
type BuilderPort interface {
	// Build returns a fresh circuit for the given address qubit count and
	// decomposition scenario, with the state-preparation prefix for
	// initialState and a terminal measurement of the address register.
	Build(numQubits int, scenario circuit.DecompScenario, initialState circuit.BasisState) (*circuit.Circuit, error)
}
