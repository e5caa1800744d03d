package qram

import (
	"fmt"

	"qramverify/domain/circuit"
)

// expandToffoli appends the gate sequence implementing CCX(c1, c2, target)
// under the given decomposition to the circuit. The ancilla slice must hold
// at least decomp.AncillaPerToffoli() zero-initialized qubits; every
// decomposition restores its ancillae to zero.
func expandToffoli(c *circuit.Circuit, decomp circuit.ToffoliDecompType, c1, c2, target int, ancilla []int) error {
	switch decomp {
	case circuit.NoDecomp, circuit.ZeroAncillaTDepth0Uncompute:
		// The measurement-based uncompute carries no T gates; modeled as the
		// native gate so the routing statistics are preserved.
		c.Add(circuit.KindCCX, target, c1, c2)

	case circuit.ZeroAncillaTDepth4:
		expandStandardToffoli(c, c1, c2, target)

	case circuit.ZeroAncillaTDepth4Compute:
		expandComputeToffoli(c, c1, c2, target)

	case circuit.FourAncillaTDepth1A:
		if len(ancilla) < 4 {
			return fmt.Errorf("decomposition %s needs 4 ancilla qubits, have %d", decomp, len(ancilla))
		}
		expandTDepth1Toffoli(c, c1, c2, target, ancilla)

	default:
		return fmt.Errorf("unsupported toffoli decomposition %q", decomp)
	}
	return nil
}

// expandStandardToffoli emits the seven-T Clifford+T Toffoli network
// (T-depth 4, no ancilla).
func expandStandardToffoli(c *circuit.Circuit, c1, c2, t int) {
	c.Add(circuit.KindH, t)
	c.Add(circuit.KindCX, t, c2)
	c.AddDagger(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c1)
	c.Add(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c2)
	c.AddDagger(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c1)
	c.Add(circuit.KindT, c2)
	c.Add(circuit.KindT, t)
	c.Add(circuit.KindH, t)
	c.Add(circuit.KindCX, c2, c1)
	c.Add(circuit.KindT, c1)
	c.AddDagger(circuit.KindT, c2)
	c.Add(circuit.KindCX, c2, c1)
}

// expandComputeToffoli emits the four-T relative-phase Toffoli used for
// compute steps whose phase is cancelled by a later uncompute.
func expandComputeToffoli(c *circuit.Circuit, c1, c2, t int) {
	c.Add(circuit.KindH, t)
	c.Add(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c2)
	c.AddDagger(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c1)
	c.Add(circuit.KindT, t)
	c.Add(circuit.KindCX, t, c2)
	c.AddDagger(circuit.KindT, t)
	c.Add(circuit.KindH, t)
}

// expandTDepth1Toffoli emits the T-depth-1 Toffoli: parities of the three
// inputs are fanned onto four ancillae, all seven T gates land in one layer,
// then the fan-out is undone. Ancillae return to zero.
//
// Uses the CCZ phase-polynomial identity: T on singles, T† on pairs, T on
// the triple parity, conjugated by H on the target.
func expandTDepth1Toffoli(c *circuit.Circuit, c1, c2, t int, anc []int) {
	a01, a02, a12, a012 := anc[0], anc[1], anc[2], anc[3]

	c.Add(circuit.KindH, t)

	// Compute parities
	c.Add(circuit.KindCX, a01, c1)
	c.Add(circuit.KindCX, a01, c2)
	c.Add(circuit.KindCX, a02, c1)
	c.Add(circuit.KindCX, a02, t)
	c.Add(circuit.KindCX, a12, c2)
	c.Add(circuit.KindCX, a12, t)
	c.Add(circuit.KindCX, a012, c1)
	c.Add(circuit.KindCX, a012, c2)
	c.Add(circuit.KindCX, a012, t)

	// Single T layer
	c.Add(circuit.KindT, c1)
	c.Add(circuit.KindT, c2)
	c.Add(circuit.KindT, t)
	c.AddDagger(circuit.KindT, a01)
	c.AddDagger(circuit.KindT, a02)
	c.AddDagger(circuit.KindT, a12)
	c.Add(circuit.KindT, a012)

	// Uncompute parities
	c.Add(circuit.KindCX, a012, t)
	c.Add(circuit.KindCX, a012, c2)
	c.Add(circuit.KindCX, a012, c1)
	c.Add(circuit.KindCX, a12, t)
	c.Add(circuit.KindCX, a12, c2)
	c.Add(circuit.KindCX, a02, t)
	c.Add(circuit.KindCX, a02, c1)
	c.Add(circuit.KindCX, a01, c2)
	c.Add(circuit.KindCX, a01, c1)

	c.Add(circuit.KindH, t)
}
