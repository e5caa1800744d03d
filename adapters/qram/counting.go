package qram

import (
	"qramverify/domain/circuit"
)

// Structural census of a built circuit, used to cross-check construction
// against the closed-form expectations of the bucket-brigade family.

// CountGates returns the total number of gates excluding measurements.
func CountGates(c *circuit.Circuit) int {
	n := 0
	for _, g := range c.Gates {
		if g.Kind != circuit.KindMeasure {
			n++
		}
	}
	return n
}

// CountT returns the number of T and T† gates.
func CountT(c *circuit.Circuit) int {
	return c.CountOf(circuit.KindT)
}

// CountH returns the number of Hadamard gates.
func CountH(c *circuit.Circuit) int {
	return c.CountOf(circuit.KindH)
}

// CountCNOT returns the number of CX gates.
func CountCNOT(c *circuit.Circuit) int {
	return c.CountOf(circuit.KindCX)
}

// CountToffoli returns the number of undecomposed CCX gates.
func CountToffoli(c *circuit.Circuit) int {
	return c.CountOf(circuit.KindCCX)
}

// TDepth returns the number of T layers under greedy moment packing: gates
// pack into the earliest moment free on their qubits, and each moment that
// contains at least one T-kind gate counts once.
func TDepth(c *circuit.Circuit) int {
	front := make([]int, c.NumQubits)
	tMoments := make(map[int]bool)
	for _, g := range c.Gates {
		if g.Kind == circuit.KindMeasure {
			continue
		}
		moment := front[g.Target]
		for _, q := range g.Controls {
			if front[q] > moment {
				moment = front[q]
			}
		}
		moment++
		front[g.Target] = moment
		for _, q := range g.Controls {
			front[q] = moment
		}
		if g.Kind == circuit.KindT {
			tMoments[moment] = true
		}
	}
	return len(tMoments)
}

// toffoliCensus is the bucket-brigade structural count for n address qubits:
// 2^n - 2 routing Toffolis in each of fan-in and fan-out, 2^n memory
// Toffolis.
func toffoliCensus(numQubits int) (fanIn, mem, fanOut int) {
	cells := 1 << numQubits
	return cells - 2, cells, cells - 2
}

// ExpectedTCount returns the closed-form T count for the circuit family
// under the given scenario.
func ExpectedTCount(numQubits int, s circuit.DecompScenario) int {
	fanIn, mem, fanOut := toffoliCensus(numQubits)
	return fanIn*s.FanIn.TGatesPerToffoli() +
		mem*s.Mem.TGatesPerToffoli() +
		fanOut*s.FanOut.TGatesPerToffoli()
}

// VerifyTCount checks the built circuit's T census against the closed form.
func VerifyTCount(c *circuit.Circuit, numQubits int, s circuit.DecompScenario) bool {
	return CountT(c) == ExpectedTCount(numQubits, s)
}

// ExpectedQubitCount returns the total width of the circuit: address,
// routing, memory, readout target, plus shared decomposition ancillae.
func ExpectedQubitCount(numQubits int, s circuit.DecompScenario) int {
	cells := 1 << numQubits
	anc := s.FanIn.AncillaPerToffoli()
	if a := s.Mem.AncillaPerToffoli(); a > anc {
		anc = a
	}
	if a := s.FanOut.AncillaPerToffoli(); a > anc {
		anc = a
	}
	return numQubits + 2*cells + 1 + anc
}

// VerifyQubitCount checks the built circuit's width against the closed form.
func VerifyQubitCount(c *circuit.Circuit, numQubits int, s circuit.DecompScenario) bool {
	return c.NumQubits == ExpectedQubitCount(numQubits, s)
}
