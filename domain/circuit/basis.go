package circuit

import (
	"strconv"

	"qramverify/domain/core"
)

// BasisState is a computational-basis input as a binary string, one character
// per address qubit, most significant bit first.
type BasisState string

// Validate checks the state against the expected qubit count.
func (s BasisState) Validate(numQubits int) error {
	if len(s) != numQubits {
		return core.ErrStateLength
	}
	for _, b := range s {
		if b != '0' && b != '1' {
			return core.ErrInvalidState
		}
	}
	return nil
}

// Index returns the integer value of the basis state.
func (s BasisState) Index() int {
	v, _ := strconv.ParseInt(string(s), 2, 64)
	return int(v)
}

func (s BasisState) String() string { return string(s) }

// EnumerateBasisStates lists all 2^n basis states of length n in ascending
// binary order ("00", "01", "10", "11" for n=2).
func EnumerateBasisStates(n int) []BasisState {
	total := 1 << n
	states := make([]BasisState, 0, total)
	for i := 0; i < total; i++ {
		bits := make([]byte, n)
		for j := 0; j < n; j++ {
			if i&(1<<(n-1-j)) != 0 {
				bits[j] = '1'
			} else {
				bits[j] = '0'
			}
		}
		states = append(states, BasisState(bits))
	}
	return states
}
