package quantum

import "fmt"

// Compose joins independent registers into one by tensor product, folding
// left to right. The first register occupies the most significant qubits and
// each later one sits below it, so Compose(a, b) differs from Compose(b, a).
// With no registers it returns the single-qubit ground state [1, 0].
func Compose(registers ...*Register) (*Register, error) {
	if len(registers) == 0 {
		return &Register{amplitudes: []complex128{1, 0}, numQubits: 1}, nil
	}
	total := 0
	for i, r := range registers {
		if r == nil {
			return nil, fmt.Errorf("compose: operand %d: %w", i, ErrNilRegister)
		}
		total += r.numQubits
	}
	if total > MaxQubits {
		return nil, fmt.Errorf("compose: %d qubits, at most %d: %w", total, MaxQubits, ErrQubitRange)
	}

	amps := registers[0].Amplitudes()
	numQubits := registers[0].numQubits
	for _, r := range registers[1:] {
		amps = tensorProduct(amps, r.amplitudes)
		numQubits += r.numQubits
	}

	return &Register{amplitudes: amps, numQubits: numQubits}, nil
}

// tensorProduct places v1[i]*v2[j] at i*len(v2)+j.
func tensorProduct(v1, v2 []complex128) []complex128 {
	out := make([]complex128, len(v1)*len(v2))
	for i, a := range v1 {
		for j, b := range v2 {
			out[i*len(v2)+j] = a * b
		}
	}
	return out
}
