package ports

import (
	"context"

	"qramverify/domain/circuit"
)

// EnginePort is the external simulation/sampling engine. Each call executes
// the circuit independently `repetitions` times and returns one observed
// output bit-string per execution. The harness never inspects circuit
// internals beyond gate enumeration; simulation correctness is owned by the
// engine.
type EnginePort interface {
	Run(ctx context.Context, c *circuit.Circuit, repetitions int) ([]string, error)
}
