package experiment

import (
	"fmt"
	"sort"
	"strings"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
)

// FrequencyDistribution maps an observed output bit-string to its count
// across repeated circuit executions.
type FrequencyDistribution map[string]int

// Total returns the sum of all counts. For a valid sample batch this equals
// the configured repetition count exactly.
func (f FrequencyDistribution) Total() int {
	total := 0
	for _, c := range f {
		total += c
	}
	return total
}

// Outcomes returns the observed bit-strings in ascending order.
func (f FrequencyDistribution) Outcomes() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the distribution as "bitstring:count" pairs in stable order.
func (f FrequencyDistribution) String() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Outcomes() {
		parts = append(parts, fmt.Sprintf("%s:%d", k, f[k]))
	}
	return strings.Join(parts, " ")
}

// ResultRecord holds one basis state's comparison: the input label and the
// original and modified circuits' empirical output distributions.
type ResultRecord struct {
	BasisState circuit.BasisState    `json:"basis_state"`
	Original   FrequencyDistribution `json:"original"`
	Modified   FrequencyDistribution `json:"modified"`

	// Fingerprints of the circuits that produced the distributions, kept for
	// replay verification.
	OriginalFingerprint core.CircuitFingerprint `json:"original_fingerprint"`
	ModifiedFingerprint core.CircuitFingerprint `json:"modified_fingerprint"`

	// RemovedGates is how many eligible gates the mutation dropped.
	RemovedGates int `json:"removed_gates"`
}

// ResultTable accumulates one record per basis state for a single
// (qubitCount, percentage) sweep iteration.
type ResultTable struct {
	QubitCount int            `json:"qubit_count"`
	Percentage float64        `json:"percentage"`
	Records    []ResultRecord `json:"records"`
}
