package circuit

import (
	"fmt"
	"slices"
	"strings"

	"qramverify/domain/core"
)

// GateKind identifies a gate type placed on the circuit.
type GateKind string

const (
	KindX       GateKind = "X"
	KindH       GateKind = "H"
	KindT       GateKind = "T"
	KindS       GateKind = "S"
	KindCX      GateKind = "CX"
	KindCZ      GateKind = "CZ"
	KindCCX     GateKind = "CCX"
	KindMeasure GateKind = "MEASURE"
)

// Gate represents one gate operation on the circuit.
type Gate struct {
	Kind     GateKind `json:"kind"`
	Dagger   bool     `json:"dagger,omitempty"` // adjoint variant (T† etc.)
	Target   int      `json:"target"`
	Controls []int    `json:"controls,omitempty"`
}

// Label returns a short human-readable gate name.
func (g Gate) Label() string {
	if g.Dagger {
		return string(g.Kind) + "†"
	}
	return string(g.Kind)
}

// References reports whether the gate acts on the given qubit.
func (g Gate) References(qubit int) bool {
	if g.Target == qubit {
		return true
	}
	return slices.Contains(g.Controls, qubit)
}

// Registers partitions the circuit's qubits into their logical roles.
// Indices refer to positions in the circuit's qubit line-up.
type Registers struct {
	Address []int `json:"address"`
	Routing []int `json:"routing"`
	Memory  []int `json:"memory"`
	Target  int   `json:"target"`
	Ancilla []int `json:"ancilla,omitempty"`
}

// Circuit holds an ordered gate sequence over a fixed set of qubits.
type Circuit struct {
	NumQubits int      `json:"num_qubits"`
	Gates     []Gate   `json:"gates"`
	Regs      Registers `json:"registers"`

	// Measured lists the qubits whose terminal measurement forms the output
	// bit-string, most significant bit first.
	Measured []int `json:"measured"`

	// Labels names each qubit line (a0.., r0.., m0.., t, anc0..).
	Labels []string `json:"labels,omitempty"`
}

// Add appends a gate to the circuit.
func (c *Circuit) Add(kind GateKind, target int, controls ...int) {
	c.Gates = append(c.Gates, Gate{Kind: kind, Target: target, Controls: controls})
}

// AddDagger appends the adjoint of a gate to the circuit.
func (c *Circuit) AddDagger(kind GateKind, target int, controls ...int) {
	c.Gates = append(c.Gates, Gate{Kind: kind, Dagger: true, Target: target, Controls: controls})
}

// Prepend inserts gates at the start of the circuit, before all existing gates.
// Used for state-preparation prefixes.
func (c *Circuit) Prepend(gates ...Gate) {
	c.Gates = append(slices.Clone(gates), c.Gates...)
}

// PositionsOf returns the indices, in execution order, of all gates of the
// given kind. Adjoint variants count as the same kind (T and T† are both
// phase gates of kind T).
func (c *Circuit) PositionsOf(kind GateKind) []int {
	var positions []int
	for i, g := range c.Gates {
		if g.Kind == kind {
			positions = append(positions, i)
		}
	}
	return positions
}

// CountOf returns the number of gates of the given kind.
func (c *Circuit) CountOf(kind GateKind) int {
	return len(c.PositionsOf(kind))
}

// RemoveAt deletes the gates at the given positions. Positions refer to the
// current gate ordering; duplicates are ignored.
func (c *Circuit) RemoveAt(positions []int) {
	if len(positions) == 0 {
		return
	}
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}
	kept := c.Gates[:0]
	for i, g := range c.Gates {
		if !drop[i] {
			kept = append(kept, g)
		}
	}
	c.Gates = kept
}

// Clone returns a deep copy of the circuit. The copy shares no mutable state
// with the original.
func (c *Circuit) Clone() *Circuit {
	gates := make([]Gate, len(c.Gates))
	for i, g := range c.Gates {
		gates[i] = Gate{
			Kind:     g.Kind,
			Dagger:   g.Dagger,
			Target:   g.Target,
			Controls: slices.Clone(g.Controls),
		}
	}
	return &Circuit{
		NumQubits: c.NumQubits,
		Gates:     gates,
		Regs: Registers{
			Address: slices.Clone(c.Regs.Address),
			Routing: slices.Clone(c.Regs.Routing),
			Memory:  slices.Clone(c.Regs.Memory),
			Target:  c.Regs.Target,
			Ancilla: slices.Clone(c.Regs.Ancilla),
		},
		Measured: slices.Clone(c.Measured),
		Labels:   slices.Clone(c.Labels),
	}
}

// Fingerprint computes a deterministic digest of the gate sequence and qubit
// layout. Structurally identical circuits share a fingerprint.
func (c *Circuit) Fingerprint() core.CircuitFingerprint {
	var b strings.Builder
	fmt.Fprintf(&b, "q=%d;m=%v;", c.NumQubits, c.Measured)
	for _, g := range c.Gates {
		fmt.Fprintf(&b, "%s:%t:%d:%v;", g.Kind, g.Dagger, g.Target, g.Controls)
	}
	return core.NewCircuitFingerprint([]byte(b.String()))
}

// Equal reports whether two circuits have identical gate sequences and layout.
func (c *Circuit) Equal(other *Circuit) bool {
	return other != nil && c.Fingerprint() == other.Fingerprint()
}

// Depth returns the circuit depth under greedy moment packing: gates are
// packed into the earliest moment whose qubits they do not collide with.
func (c *Circuit) Depth() int {
	front := make([]int, c.NumQubits)
	depth := 0
	for _, g := range c.Gates {
		if g.Kind == KindMeasure {
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
		if moment > depth {
			depth = moment
		}
	}
	return depth
}

// Diagram renders a small text diagram of the circuit, one line per qubit.
// Intended for debugging small instances only.
func (c *Circuit) Diagram() string {
	var b strings.Builder
	for q := 0; q < c.NumQubits; q++ {
		label := fmt.Sprintf("q%d", q)
		if q < len(c.Labels) {
			label = c.Labels[q]
		}
		fmt.Fprintf(&b, "%-5s:", label)
		for _, g := range c.Gates {
			switch {
			case g.Target == q:
				fmt.Fprintf(&b, "-%s", g.Label())
			case slices.Contains(g.Controls, q):
				b.WriteString("-@")
			default:
				b.WriteString("--")
			}
		}
		b.WriteString("-\n")
	}
	return b.String()
}
