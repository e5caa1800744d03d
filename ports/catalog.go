package ports

import (
	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// CatalogPort resolves scenario identifiers to decomposition configurations.
type CatalogPort interface {
	// Resolve maps an identifier to its decomposition scenario. An
	// unrecognized identifier is a hard error before any circuit is built.
	Resolve(id core.ScenarioID) (circuit.DecompScenario, error)

	// ScenarioIDs lists the supported identifiers in order.
	ScenarioIDs() []core.ScenarioID
}
