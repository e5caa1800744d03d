package qram

import (
	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// Catalog maps scenario identifiers to decomposition configurations.
// Pure lookup, no side effects; resolved once per experiment run.
type Catalog struct{}

// NewCatalog creates a decomposition catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// ScenarioIDs returns the supported identifiers in order.
func (c *Catalog) ScenarioIDs() []core.ScenarioID {
	return []core.ScenarioID{"1", "2", "3"}
}

// Resolve returns the decomposition configuration for the given identifier.
// An unrecognized identifier is a hard error.
func (c *Catalog) Resolve(id core.ScenarioID) (circuit.DecompScenario, error) {
	switch id {
	case "1":
		return circuit.DecompScenario{
			FanIn:            circuit.ZeroAncillaTDepth4Compute,
			Mem:              circuit.ZeroAncillaTDepth4,
			FanOut:           circuit.ZeroAncillaTDepth0Uncompute,
			ParallelToffolis: true,
		}, nil
	case "2":
		return circuit.DecompScenario{
			FanIn:            circuit.NoDecomp,
			Mem:              circuit.ZeroAncillaTDepth4,
			FanOut:           circuit.NoDecomp,
			ParallelToffolis: true,
		}, nil
	case "3":
		return circuit.DecompScenario{
			FanIn:            circuit.FourAncillaTDepth1A,
			Mem:              circuit.FourAncillaTDepth1A,
			FanOut:           circuit.FourAncillaTDepth1A,
			ParallelToffolis: false,
		}, nil
	default:
		return circuit.DecompScenario{}, core.NewUnknownScenarioError(id.String())
	}
}
