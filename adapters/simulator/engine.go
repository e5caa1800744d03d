package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// maxSimQubits bounds the statevector width: 2^26 complex128 amplitudes is
// already 1 GiB.
const maxSimQubits = 26

// Engine is the statevector sampling engine implementing ports.EnginePort.
// Each Run call is an independent stochastic trial batch; the unitary part
// of the circuit is simulated once and the terminal measurement is drawn
// `repetitions` times from the measured register's marginal.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine drawing samples from the given source. A nil
// rng falls back to an unseeded source, so unseeded runs differ between
// invocations.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{rng: rng}
}

// Run executes the circuit repetitions times and returns one observed output
// bit-string per execution. A circuit the engine cannot execute surfaces as
// core.ErrSimulationFailure without retry.
func (e *Engine) Run(ctx context.Context, c *circuit.Circuit, repetitions int) ([]string, error) {
	if repetitions <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidRepetition, repetitions)
	}
	probs, err := e.simulate(ctx, c)
	if err != nil {
		return nil, core.NewSimulationError(err)
	}

	width := len(c.Measured)
	outcomes := make([]string, repetitions)
	e.mu.Lock()
	defer e.mu.Unlock()
	for r := 0; r < repetitions; r++ {
		outcomes[r] = formatOutcome(e.draw(probs), width)
	}
	return outcomes, nil
}

func (e *Engine) simulate(ctx context.Context, c *circuit.Circuit) ([]float64, error) {
	if c == nil || c.NumQubits <= 0 {
		return nil, fmt.Errorf("empty circuit")
	}
	if c.NumQubits > maxSimQubits {
		return nil, fmt.Errorf("circuit width %d exceeds simulator limit %d", c.NumQubits, maxSimQubits)
	}
	if len(c.Measured) == 0 {
		return nil, fmt.Errorf("circuit has no measured qubits")
	}
	for _, q := range c.Measured {
		if q < 0 || q >= c.NumQubits {
			return nil, fmt.Errorf("measured qubit %d out of range", q)
		}
	}

	state := NewStateVector(c.NumQubits)
	for i, g := range c.Gates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.Target < 0 || g.Target >= c.NumQubits {
			return nil, fmt.Errorf("gate %d target %d out of range", i, g.Target)
		}
		for _, q := range g.Controls {
			if q < 0 || q >= c.NumQubits {
				return nil, fmt.Errorf("gate %d control %d out of range", i, q)
			}
		}
		if err := state.Apply(g); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return state.MarginalProbabilities(c.Measured), nil
}

// draw samples one outcome index from the categorical distribution.
func (e *Engine) draw(probs []float64) int {
	u := e.rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if u < acc {
			return i
		}
	}
	// Floating point slack: the cumulative sum can land a hair under 1.
	return len(probs) - 1
}

func formatOutcome(outcome, width int) string {
	bits := make([]byte, width)
	for j := 0; j < width; j++ {
		if outcome&(1<<(width-1-j)) != 0 {
			bits[j] = '1'
		} else {
			bits[j] = '0'
		}
	}
	return string(bits)
}
