package quantum

import (
	"fmt"
	"math/bits"
	"math/cmplx"
	"strings"
)

// Register is the joint state of one or more qubits as a dense amplitude
// vector. Bit k of a basis index is the value of qubit k, so qubit 0 is the
// least significant bit. A Register is not safe for concurrent mutation.
type Register struct {
	amplitudes []complex128
	numQubits  int
}

// MaxQubits bounds every register so that its amplitude vector (16 bytes
// per amplitude, 2^n amplitudes) stays allocatable.
const MaxQubits = 24

// NewRegister builds a register from a copy of amplitudes. The length must
// be a power of two no smaller than 2, on at most MaxQubits qubits.
func NewRegister(amplitudes []complex128) (*Register, error) {
	n := len(amplitudes)
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("new register: got %d amplitudes: %w", n, ErrAmplitudeLength)
	}
	if q := bits.TrailingZeros(uint(n)); q > MaxQubits {
		return nil, fmt.Errorf("new register: %d qubits, at most %d: %w", q, MaxQubits, ErrQubitRange)
	}

	amps := make([]complex128, n)
	copy(amps, amplitudes)
	return &Register{amplitudes: amps, numQubits: bits.TrailingZeros(uint(n))}, nil
}

// NewGroundState returns |0…0⟩ on numQubits qubits.
func NewGroundState(numQubits int) (*Register, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("new ground state: %d qubits not in [1, %d]: %w", numQubits, MaxQubits, ErrQubitRange)
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &Register{amplitudes: amps, numQubits: numQubits}, nil
}

// Clone returns an independent copy.
func (r *Register) Clone() *Register {
	amps := make([]complex128, len(r.amplitudes))
	copy(amps, r.amplitudes)
	return &Register{amplitudes: amps, numQubits: r.numQubits}
}

// NumQubits returns the number of qubits.
func (r *Register) NumQubits() int {
	return r.numQubits
}

// Len returns the number of amplitudes, 2^NumQubits.
func (r *Register) Len() int {
	return len(r.amplitudes)
}

// Amplitudes returns a copy of the amplitude vector.
func (r *Register) Amplitudes() []complex128 {
	amps := make([]complex128, len(r.amplitudes))
	copy(amps, r.amplitudes)
	return amps
}

// Amplitude returns the amplitude of basis state i.
func (r *Register) Amplitude(i int) complex128 {
	return r.amplitudes[i]
}

// Probabilities returns |amplitude|² for every basis state.
func (r *Register) Probabilities() []float64 {
	probs := make([]float64, len(r.amplitudes))
	for i, amp := range r.amplitudes {
		probs[i] = probability(amp)
	}
	return probs
}

// Norm returns the total probability, which is 1 for a normalized state.
func (r *Register) Norm() float64 {
	total := 0.0
	for _, amp := range r.amplitudes {
		total += probability(amp)
	}
	return total
}

// Equal reports whether both registers have the same size and every
// amplitude differs by at most tol.
func (r *Register) Equal(other *Register, tol float64) bool {
	if other == nil || r.numQubits != other.numQubits {
		return false
	}
	for i, amp := range r.amplitudes {
		if cmplx.Abs(amp-other.amplitudes[i]) > tol {
			return false
		}
	}
	return true
}

// BasisLabel returns the bit string of basis index i with the most
// significant qubit first, e.g. "01" for i=1 on two qubits.
func (r *Register) BasisLabel(i int) string {
	var sb strings.Builder
	for q := r.numQubits - 1; q >= 0; q-- {
		if i&(1<<q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal probabilities of every qubit,
// indexed by qubit.
func (r *Register) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, r.numQubits)

	for i, amp := range r.amplitudes {
		prob := probability(amp)
		for q := 0; q < r.numQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// BasisState describes one computational basis state of a register.
type BasisState struct {
	Index     int
	Label     string
	Amplitude complex128
	Prob      float64
	Phase     float64 // argument of Amplitude in [-π, π]
}

// BasisStates lists the basis states whose probability exceeds threshold.
// A negative threshold lists every state.
func (r *Register) BasisStates(threshold float64) []BasisState {
	states := make([]BasisState, 0, len(r.amplitudes))

	for i, amp := range r.amplitudes {
		prob := probability(amp)
		if threshold >= 0 && prob <= threshold {
			continue
		}
		states = append(states, BasisState{
			Index:     i,
			Label:     r.BasisLabel(i),
			Amplitude: amp,
			Prob:      prob,
			Phase:     cmplx.Phase(amp),
		})
	}

	return states
}

func probability(amp complex128) float64 {
	return real(amp)*real(amp) + imag(amp)*imag(amp)
}
