package circuit

// ToffoliDecompType selects the low-level gate sequence implementing a
// multi-controlled gate role.
type ToffoliDecompType string

const (
	// NoDecomp keeps the Toffoli as a native CCX gate.
	NoDecomp ToffoliDecompType = "NO_DECOMP"

	// ZeroAncillaTDepth4 is the standard seven-T Toffoli network over the
	// Clifford+T gate set, T-depth 4, no ancilla.
	ZeroAncillaTDepth4 ToffoliDecompType = "ZERO_ANCILLA_TDEPTH_4"

	// ZeroAncillaTDepth4Compute is the relative-phase compute variant with
	// four T gates. Valid when a matching uncompute follows.
	ZeroAncillaTDepth4Compute ToffoliDecompType = "ZERO_ANCILLA_TDEPTH_4_COMPUTE"

	// ZeroAncillaTDepth0Uncompute is the measurement-based uncompute, which
	// carries no T gates. Modeled unitarily as a native CCX so the statistics
	// match while the T census stays at zero.
	ZeroAncillaTDepth0Uncompute ToffoliDecompType = "ZERO_ANCILLA_TDEPTH_0_UNCOMPUTE"

	// FourAncillaTDepth1A spreads the seven T gates over four ancilla qubits
	// so they land in a single T layer.
	FourAncillaTDepth1A ToffoliDecompType = "FOUR_ANCILLA_TDEPTH_1_A"
)

// AncillaPerToffoli returns how many dedicated ancilla qubits one Toffoli
// needs under this decomposition.
func (t ToffoliDecompType) AncillaPerToffoli() int {
	if t == FourAncillaTDepth1A {
		return 4
	}
	return 0
}

// TGatesPerToffoli returns the number of T-kind gates one decomposed Toffoli
// contributes.
func (t ToffoliDecompType) TGatesPerToffoli() int {
	switch t {
	case ZeroAncillaTDepth4:
		return 7
	case ZeroAncillaTDepth4Compute:
		return 4
	case FourAncillaTDepth1A:
		return 7
	default:
		return 0
	}
}

// DecompScenario is the immutable decomposition configuration for one
// experiment run: one decomposition per structural role of the
// bucket-brigade circuit.
type DecompScenario struct {
	FanIn            ToffoliDecompType `json:"fan_in"`
	Mem              ToffoliDecompType `json:"mem"`
	FanOut           ToffoliDecompType `json:"fan_out"`
	ParallelToffolis bool              `json:"parallel_toffolis"`
}
