package simulator

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

func deterministicEngine() *Engine {
	return NewEngine(rand.New(rand.NewSource(42)))
}

// TestRunDeterministicCircuit tests sampling of a classical circuit
func TestRunDeterministicCircuit(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 2, Measured: []int{0, 1}}
	c.Add(circuit.KindX, 0)
	c.Add(circuit.KindMeasure, 0)
	c.Add(circuit.KindMeasure, 1)

	outcomes, err := deterministicEngine().Run(context.Background(), c, 500)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 500 {
		t.Fatalf("Expected 500 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o != "10" {
			t.Fatalf("Classical circuit should always yield 10, got %q", o)
		}
	}
}

// TestRunSuperposition tests empirical frequencies of an H circuit
func TestRunSuperposition(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 1, Measured: []int{0}}
	c.Add(circuit.KindH, 0)
	c.Add(circuit.KindMeasure, 0)

	outcomes, err := deterministicEngine().Run(context.Background(), c, 10000)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ones := 0
	for _, o := range outcomes {
		if o == "1" {
			ones++
		}
	}
	ratio := float64(ones) / float64(len(outcomes))
	if math.Abs(ratio-0.5) > 0.05 {
		t.Errorf("Expected roughly half ones from H, got ratio %v", ratio)
	}
}

// TestRunRejectsInvalidRepetitions tests the positive-repetitions contract
func TestRunRejectsInvalidRepetitions(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 1, Measured: []int{0}}
	c.Add(circuit.KindMeasure, 0)

	for _, reps := range []int{0, -5} {
		if _, err := deterministicEngine().Run(context.Background(), c, reps); !errors.Is(err, core.ErrInvalidRepetition) {
			t.Errorf("Repetitions %d: expected ErrInvalidRepetition, got %v", reps, err)
		}
	}
}

// TestRunRejectsMalformedCircuits tests the SimulationFailure taxonomy
func TestRunRejectsMalformedCircuits(t *testing.T) {
	engine := deterministicEngine()

	noMeasure := &circuit.Circuit{NumQubits: 1}
	noMeasure.Add(circuit.KindH, 0)

	outOfRange := &circuit.Circuit{NumQubits: 1, Measured: []int{0}}
	outOfRange.Add(circuit.KindX, 5)

	badControl := &circuit.Circuit{NumQubits: 2, Measured: []int{0}}
	badControl.Add(circuit.KindCX, 0, 7)

	tooWide := &circuit.Circuit{NumQubits: maxSimQubits + 1, Measured: []int{0}}

	for name, c := range map[string]*circuit.Circuit{
		"nil":          nil,
		"no measure":   noMeasure,
		"out of range": outOfRange,
		"bad control":  badControl,
		"too wide":     tooWide,
	} {
		if _, err := engine.Run(context.Background(), c, 10); !core.IsSimulationError(err) {
			t.Errorf("%s: expected simulation failure, got %v", name, err)
		}
	}
}

// TestRunHonorsCancellation tests context cancellation mid-simulation
func TestRunHonorsCancellation(t *testing.T) {
	c := &circuit.Circuit{NumQubits: 2, Measured: []int{0}}
	for i := 0; i < 100; i++ {
		c.Add(circuit.KindH, 0)
	}
	c.Add(circuit.KindMeasure, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := deterministicEngine().Run(ctx, c, 10); err == nil {
		t.Error("Expected an error from a cancelled context")
	}
}
