package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"qramverify/domain/circuit"
)

// StateVector holds the full amplitude vector of a register. Qubit 0 is the
// least significant bit of the amplitude index.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector creates the all-zeros state |0...0>.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Apply applies one gate to the state.
func (s *StateVector) Apply(g circuit.Gate) error {
	switch g.Kind {
	case circuit.KindX:
		s.applyX(g.Target)
	case circuit.KindH:
		s.applyH(g.Target)
	case circuit.KindT:
		s.applyPhase(g.Target, math.Pi/4, g.Dagger)
	case circuit.KindS:
		s.applyPhase(g.Target, math.Pi/2, g.Dagger)
	case circuit.KindCX:
		if len(g.Controls) != 1 {
			return fmt.Errorf("CX needs one control, got %d", len(g.Controls))
		}
		s.applyCX(g.Controls[0], g.Target)
	case circuit.KindCZ:
		if len(g.Controls) != 1 {
			return fmt.Errorf("CZ needs one control, got %d", len(g.Controls))
		}
		s.applyCZ(g.Controls[0], g.Target)
	case circuit.KindCCX:
		if len(g.Controls) != 2 {
			return fmt.Errorf("CCX needs two controls, got %d", len(g.Controls))
		}
		s.applyCCX(g.Controls[0], g.Controls[1], g.Target)
	case circuit.KindMeasure:
		// Terminal measurements are handled by the sampler.
	default:
		return fmt.Errorf("unknown gate kind %q", g.Kind)
	}
	return nil
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) applyPhase(q int, angle float64, dagger bool) {
	if dagger {
		angle = -angle
	}
	factor := cmplx.Exp(complex(0, angle))
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyCCX(c1, c2, target int) {
	b1 := 1 << c1
	b2 := 1 << c2
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&b1 != 0 && i&b2 != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// MarginalProbabilities returns the probability of each outcome of the given
// qubits, traced over all other qubits. The outcome index treats qubits[0]
// as the most significant bit, matching bit-string labels.
func (s *StateVector) MarginalProbabilities(qubits []int) []float64 {
	m := len(qubits)
	probs := make([]float64, 1<<m)
	for i, amp := range s.Amplitudes {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		if p == 0 {
			continue
		}
		outcome := 0
		for j, q := range qubits {
			if i&(1<<q) != 0 {
				outcome |= 1 << (m - 1 - j)
			}
		}
		probs[outcome] += p
	}
	return probs
}
