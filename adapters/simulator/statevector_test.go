package simulator

import (
	"math"
	"testing"

	"qramverify/domain/circuit"
)

const tolerance = 1e-9

func probOf(s *StateVector, index int) float64 {
	amp := s.Amplitudes[index]
	return real(amp)*real(amp) + imag(amp)*imag(amp)
}

// TestApplyX tests the bit flip
func TestApplyX(t *testing.T) {
	s := NewStateVector(2)
	if err := s.Apply(circuit.Gate{Kind: circuit.KindX, Target: 1}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(probOf(s, 0b10)-1.0) > tolerance {
		t.Errorf("Expected all amplitude on |10>, got %v", s.Amplitudes)
	}
}

// TestApplyH tests the equal superposition and its inverse
func TestApplyH(t *testing.T) {
	s := NewStateVector(1)
	s.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	if math.Abs(probOf(s, 0)-0.5) > tolerance || math.Abs(probOf(s, 1)-0.5) > tolerance {
		t.Errorf("Expected equal superposition, got %v", s.Amplitudes)
	}

	s.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	if math.Abs(probOf(s, 0)-1.0) > tolerance {
		t.Errorf("H twice should restore |0>, got %v", s.Amplitudes)
	}
}

// TestApplyTPhase tests that T and T† cancel
func TestApplyTPhase(t *testing.T) {
	s := NewStateVector(1)
	s.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	s.Apply(circuit.Gate{Kind: circuit.KindT, Target: 0})
	s.Apply(circuit.Gate{Kind: circuit.KindT, Target: 0, Dagger: true})
	s.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	if math.Abs(probOf(s, 0)-1.0) > tolerance {
		t.Errorf("H T T† H should restore |0>, got %v", s.Amplitudes)
	}
}

// TestTEqualsSSquared tests T·T = S on superposed input
func TestTEqualsSSquared(t *testing.T) {
	a := NewStateVector(1)
	a.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	a.Apply(circuit.Gate{Kind: circuit.KindT, Target: 0})
	a.Apply(circuit.Gate{Kind: circuit.KindT, Target: 0})

	b := NewStateVector(1)
	b.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	b.Apply(circuit.Gate{Kind: circuit.KindS, Target: 0})

	for i := range a.Amplitudes {
		diff := a.Amplitudes[i] - b.Amplitudes[i]
		if math.Abs(real(diff)) > tolerance || math.Abs(imag(diff)) > tolerance {
			t.Errorf("Amplitude %d: T·T gave %v, S gave %v", i, a.Amplitudes[i], b.Amplitudes[i])
		}
	}
}

// TestApplyCX tests controlled flips in both control states
func TestApplyCX(t *testing.T) {
	s := NewStateVector(2)
	s.Apply(circuit.Gate{Kind: circuit.KindCX, Target: 1, Controls: []int{0}})
	if math.Abs(probOf(s, 0b00)-1.0) > tolerance {
		t.Errorf("CX with control 0 should do nothing, got %v", s.Amplitudes)
	}

	s.Apply(circuit.Gate{Kind: circuit.KindX, Target: 0})
	s.Apply(circuit.Gate{Kind: circuit.KindCX, Target: 1, Controls: []int{0}})
	if math.Abs(probOf(s, 0b11)-1.0) > tolerance {
		t.Errorf("CX with control 1 should flip the target, got %v", s.Amplitudes)
	}
}

// TestApplyCCX tests the Toffoli truth table corners
func TestApplyCCX(t *testing.T) {
	// Only one control set: no flip.
	s := NewStateVector(3)
	s.Apply(circuit.Gate{Kind: circuit.KindX, Target: 0})
	s.Apply(circuit.Gate{Kind: circuit.KindCCX, Target: 2, Controls: []int{0, 1}})
	if math.Abs(probOf(s, 0b001)-1.0) > tolerance {
		t.Errorf("CCX with one control should do nothing, got state %v", s.Amplitudes)
	}

	// Both controls set: flip.
	s.Apply(circuit.Gate{Kind: circuit.KindX, Target: 1})
	s.Apply(circuit.Gate{Kind: circuit.KindCCX, Target: 2, Controls: []int{0, 1}})
	if math.Abs(probOf(s, 0b111)-1.0) > tolerance {
		t.Errorf("CCX with both controls should flip the target, got state %v", s.Amplitudes)
	}
}

// TestApplyRejectsMalformedGates tests control arity validation
func TestApplyRejectsMalformedGates(t *testing.T) {
	s := NewStateVector(3)
	bad := []circuit.Gate{
		{Kind: circuit.KindCX, Target: 0},
		{Kind: circuit.KindCCX, Target: 0, Controls: []int{1}},
		{Kind: "BOGUS", Target: 0},
	}
	for _, g := range bad {
		if err := s.Apply(g); err == nil {
			t.Errorf("Expected error for gate %+v", g)
		}
	}
}

// TestMarginalProbabilities tests tracing out unmeasured qubits
func TestMarginalProbabilities(t *testing.T) {
	// Bell pair on qubits 0,1; qubit 2 deterministic 1.
	s := NewStateVector(3)
	s.Apply(circuit.Gate{Kind: circuit.KindH, Target: 0})
	s.Apply(circuit.Gate{Kind: circuit.KindCX, Target: 1, Controls: []int{0}})
	s.Apply(circuit.Gate{Kind: circuit.KindX, Target: 2})

	probs := s.MarginalProbabilities([]int{0})
	if math.Abs(probs[0]-0.5) > tolerance || math.Abs(probs[1]-0.5) > tolerance {
		t.Errorf("Marginal over one Bell qubit should be uniform, got %v", probs)
	}

	// qubits[0] is the MSB of the outcome index.
	probs = s.MarginalProbabilities([]int{2, 0})
	if math.Abs(probs[0b10]-0.5) > tolerance || math.Abs(probs[0b11]-0.5) > tolerance {
		t.Errorf("Expected mass on 10 and 11, got %v", probs)
	}
	if probs[0b00] > tolerance || probs[0b01] > tolerance {
		t.Errorf("Expected no mass on 00/01, got %v", probs)
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if math.Abs(total-1.0) > tolerance {
		t.Errorf("Marginal should sum to 1, got %v", total)
	}
}
