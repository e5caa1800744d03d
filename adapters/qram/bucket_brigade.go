package qram

import (
	"fmt"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// highOp is an undecomposed structural operation of the bucket-brigade
// routing network. Toffolis are expanded per scenario at emission time.
type highOp struct {
	kind     circuit.GateKind
	target   int
	controls []int
}

// Factory builds bucket-brigade addressing circuits. Implements
// ports.BuilderPort. Construction is deterministic: identical arguments
// always yield the same gate sequence.
type Factory struct{}

// NewFactory creates a bucket-brigade circuit factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Build constructs the circuit for numQubits address qubits under the given
// decomposition scenario, prepares initialState on the address register and
// measures the address register plus the readout target at the end.
//
// Register layout: address a0..a(n-1), routing r0..r(2^n-1), memory
// m0..m(2^n-1), target t, then any shared decomposition ancillae. The
// routing register holds the one-hot address expansion between fan-in and
// fan-out. Every memory cell is initialized to one, so a correct query
// always reads 1 into the target; a query corrupted by gate removal shows
// up directly in the measured target bit.
func (f *Factory) Build(numQubits int, scenario circuit.DecompScenario, initialState circuit.BasisState) (*circuit.Circuit, error) {
	if numQubits < 2 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidQubits, numQubits)
	}
	if err := initialState.Validate(numQubits); err != nil {
		return nil, err
	}

	cells := 1 << numQubits
	ancillaNeed := maxInt(scenario.FanIn.AncillaPerToffoli(),
		maxInt(scenario.Mem.AncillaPerToffoli(), scenario.FanOut.AncillaPerToffoli()))

	c := &circuit.Circuit{}
	c.Regs.Address = allocate(c, "a", numQubits)
	c.Regs.Routing = allocate(c, "r", cells)
	c.Regs.Memory = allocate(c, "m", cells)
	c.Regs.Target = allocateOne(c, "t")
	c.Regs.Ancilla = allocate(c, "anc", ancillaNeed)
	c.Measured = append([]int(nil), c.Regs.Address...)
	c.Measured = append(c.Measured, c.Regs.Target)

	// State preparation prefix for the chosen basis state.
	for i, b := range initialState {
		if b == '1' {
			c.Add(circuit.KindX, c.Regs.Address[i])
		}
	}

	// Stored memory content: all ones.
	for _, m := range c.Regs.Memory {
		c.Add(circuit.KindX, m)
	}

	fanIn := f.fanInOps(numQubits, c.Regs)

	// Fan-in: route the address into a one-hot routing register.
	if err := emit(c, fanIn, scenario.FanIn, c.Regs.Ancilla); err != nil {
		return nil, err
	}

	// Memory coupling: one Toffoli per cell onto the readout target.
	for i := 0; i < cells; i++ {
		mem := []highOp{{kind: circuit.KindCCX, target: c.Regs.Target,
			controls: []int{c.Regs.Routing[i], c.Regs.Memory[i]}}}
		if err := emit(c, mem, scenario.Mem, c.Regs.Ancilla); err != nil {
			return nil, err
		}
	}

	// Fan-out: uncompute the routing register. X, CX and CCX are
	// self-inverse, so the inverse network is the fan-in reversed.
	if err := emit(c, reverse(fanIn), scenario.FanOut, c.Regs.Ancilla); err != nil {
		return nil, err
	}

	for _, q := range c.Measured {
		c.Add(circuit.KindMeasure, q)
	}
	return c, nil
}

// fanInOps produces the routing network that expands the address register
// into a one-hot pattern over the routing cells: after the network,
// routing[v] = 1 exactly when the address equals v.
//
// Level 0 needs only X and CX; each deeper level k splits every active
// prefix cell with one Toffoli controlled by address bit k, giving the
// bucket-brigade count of 2^n - 2 routing Toffolis.
func (f *Factory) fanInOps(numQubits int, regs circuit.Registers) []highOp {
	var ops []highOp
	cellAt := func(prefix, length int) int {
		return regs.Routing[prefix<<(numQubits-length)]
	}

	// Level 0: routing holds the one-bit prefix split of a0.
	c0 := cellAt(0, 1)
	c1 := cellAt(1, 1)
	ops = append(ops,
		highOp{kind: circuit.KindCX, target: c1, controls: []int{regs.Address[0]}},
		highOp{kind: circuit.KindX, target: c0},
		highOp{kind: circuit.KindCX, target: c0, controls: []int{regs.Address[0]}},
	)

	for level := 1; level < numQubits; level++ {
		for prefix := 0; prefix < 1<<level; prefix++ {
			parent := cellAt(prefix, level)
			child1 := cellAt(prefix<<1|1, level+1)
			// child0 shares the parent's storage cell.
			ops = append(ops,
				highOp{kind: circuit.KindCCX, target: child1,
					controls: []int{regs.Address[level], parent}},
				highOp{kind: circuit.KindCX, target: parent, controls: []int{child1}},
			)
		}
	}
	return ops
}

// emit appends the structural ops to the circuit, expanding Toffolis under
// the given decomposition.
func emit(c *circuit.Circuit, ops []highOp, decomp circuit.ToffoliDecompType, ancilla []int) error {
	for _, op := range ops {
		if op.kind == circuit.KindCCX {
			if err := expandToffoli(c, decomp, op.controls[0], op.controls[1], op.target, ancilla); err != nil {
				return err
			}
			continue
		}
		c.Add(op.kind, op.target, op.controls...)
	}
	return nil
}

func reverse(ops []highOp) []highOp {
	out := make([]highOp, len(ops))
	for i, op := range ops {
		out[len(ops)-1-i] = op
	}
	return out
}

func allocate(c *circuit.Circuit, prefix string, n int) []int {
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = c.NumQubits
		c.Labels = append(c.Labels, fmt.Sprintf("%s%d", prefix, i))
		c.NumQubits++
	}
	return idx
}

func allocateOne(c *circuit.Circuit, label string) int {
	idx := c.NumQubits
	c.Labels = append(c.Labels, label)
	c.NumQubits++
	return idx
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
