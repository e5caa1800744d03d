package app

import (
	"context"
	"fmt"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
	"qramverify/domain/experiment"
	"qramverify/ports"
)

// StochasticExecutor tallies repeated circuit executions into a frequency
// distribution. Each call is an independent trial batch; no state survives
// between calls.
type StochasticExecutor struct {
	engine ports.EnginePort
}

// NewStochasticExecutor creates an executor backed by the given engine.
func NewStochasticExecutor(engine ports.EnginePort) *StochasticExecutor {
	return &StochasticExecutor{engine: engine}
}

// Sample runs the circuit `repetitions` times and counts the observed output
// bit-strings. The counts of the returned distribution sum to exactly
// `repetitions`; an engine that returns a different number of samples is
// reported as a simulation failure.
func (e *StochasticExecutor) Sample(ctx context.Context, c *circuit.Circuit, repetitions int) (experiment.FrequencyDistribution, error) {
	if repetitions <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidRepetition, repetitions)
	}

	outcomes, err := e.engine.Run(ctx, c, repetitions)
	if err != nil {
		return nil, err
	}

	freq := make(experiment.FrequencyDistribution)
	for _, outcome := range outcomes {
		freq[outcome]++
	}
	if total := freq.Total(); total != repetitions {
		return nil, core.NewSimulationError(
			fmt.Errorf("engine returned %d samples, expected %d", total, repetitions))
	}
	return freq, nil
}
