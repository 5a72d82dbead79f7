package quantum

import (
	"fmt"
	"math"
)

// Qubit is a single normalized qubit, α|0⟩ + β|1⟩, backed by a one-qubit
// Register.
type Qubit struct {
	reg *Register
}

// NewQubit normalizes (alpha, beta) and returns the qubit.
func NewQubit(alpha, beta complex128) (*Qubit, error) {
	norm := math.Sqrt(probability(alpha) + probability(beta))
	if norm == 0 {
		return nil, fmt.Errorf("new qubit: %w", ErrZeroNorm)
	}
	n := complex(norm, 0)
	return &Qubit{reg: &Register{amplitudes: []complex128{alpha / n, beta / n}, numQubits: 1}}, nil
}

// Alpha returns the |0⟩ amplitude.
func (q *Qubit) Alpha() complex128 {
	return q.reg.amplitudes[0]
}

// Beta returns the |1⟩ amplitude.
func (q *Qubit) Beta() complex128 {
	return q.reg.amplitudes[1]
}

// Apply applies a one-qubit gate in place.
func (q *Qubit) Apply(g Gate) error {
	return q.reg.ApplyGate(g.matrix, 0)
}

// Register returns a copy of the qubit as a one-qubit register, ready to be
// passed to Compose.
func (q *Qubit) Register() *Register {
	return q.reg.Clone()
}

func (q *Qubit) String() string {
	return fmt.Sprintf("%v|0⟩ + %v|1⟩", q.Alpha(), q.Beta())
}
