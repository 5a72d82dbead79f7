package quantum

import "fmt"

// ApplyGate applies a 2×2 unitary to the target qubit. On error the
// register is left exactly as it was.
func (r *Register) ApplyGate(m Matrix, target int) error {
	if err := r.checkSingle("apply gate", m, target); err != nil {
		return err
	}

	blockSize := 1 << target
	numBlocks := 1 << (r.numQubits - target - 1)
	newAmps := make([]complex128, len(r.amplitudes))

	// index0 and index1 differ only in the target bit.
	for block := range numBlocks {
		for offset := range blockSize {
			index0 := block*blockSize*2 + offset
			index1 := index0 + blockSize

			a0, a1 := r.amplitudes[index0], r.amplitudes[index1]
			newAmps[index0] = m[0][0]*a0 + m[0][1]*a1
			newAmps[index1] = m[1][0]*a0 + m[1][1]*a1
		}
	}

	r.amplitudes = newAmps
	return nil
}

// ApplyControlledGate applies a 2×2 unitary to the target qubit within the
// subspace where the control qubit is 1 and leaves every other amplitude
// unchanged.
func (r *Register) ApplyControlledGate(m Matrix, control, target int) error {
	if err := r.checkSingle("apply controlled gate", m, target); err != nil {
		return err
	}
	if err := r.checkQubit("apply controlled gate", "control", control); err != nil {
		return err
	}
	if control == target {
		return fmt.Errorf("apply controlled gate: qubit %d: %w", control, ErrQubitConflict)
	}

	cBit := 1 << control
	tBit := 1 << target
	newAmps := make([]complex128, len(r.amplitudes))

	for i := range r.amplitudes {
		if i&tBit != 0 {
			continue
		}
		j := i | tBit
		a0, a1 := r.amplitudes[i], r.amplitudes[j]
		if i&cBit == 0 {
			newAmps[i], newAmps[j] = a0, a1
			continue
		}
		newAmps[i] = m[0][0]*a0 + m[0][1]*a1
		newAmps[j] = m[1][0]*a0 + m[1][1]*a1
	}

	r.amplitudes = newAmps
	return nil
}

// ApplyTwoQubitGate applies a 4×4 unitary to qubits q1 and q2. Row and
// column k of m address the local state b(q1)<<1 | b(q2), so q1 plays the
// role of the more significant qubit, as in Compose.
func (r *Register) ApplyTwoQubitGate(m Matrix, q1, q2 int) error {
	const op = "apply two-qubit gate"
	if !m.hasShape(4) {
		return fmt.Errorf("%s: want 4x4: %w", op, ErrGateShape)
	}
	if !IsUnitary(m) {
		return fmt.Errorf("%s: %w", op, ErrNotUnitary)
	}
	if err := r.checkQubit(op, "first", q1); err != nil {
		return err
	}
	if err := r.checkQubit(op, "second", q2); err != nil {
		return err
	}
	if q1 == q2 {
		return fmt.Errorf("%s: qubit %d: %w", op, q1, ErrQubitConflict)
	}

	bit1 := 1 << q1
	bit2 := 1 << q2
	newAmps := make([]complex128, len(r.amplitudes))

	for base := range r.amplitudes {
		if base&(bit1|bit2) != 0 {
			continue
		}
		idx := [4]int{base, base | bit2, base | bit1, base | bit1 | bit2}
		for row := range 4 {
			var sum complex128
			for col := range 4 {
				sum += m[row][col] * r.amplitudes[idx[col]]
			}
			newAmps[idx[row]] = sum
		}
	}

	r.amplitudes = newAmps
	return nil
}

// Apply applies a catalog gate. One-qubit gates act on qubits[0]; two-qubit
// gates take two qubit indices.
func (r *Register) Apply(g Gate, qubits ...int) error {
	switch {
	case g.Qubits() == 0:
		return fmt.Errorf("apply %s: want 2x2 or 4x4: %w", g.name, ErrGateShape)
	case g.Qubits() == 1 && len(qubits) == 1:
		return r.ApplyGate(g.matrix, qubits[0])
	case g.Qubits() == 2 && len(qubits) == 2:
		return r.ApplyTwoQubitGate(g.matrix, qubits[0], qubits[1])
	default:
		return fmt.Errorf("apply %s: %d qubit indices for a %d-qubit gate: %w",
			g.name, len(qubits), g.Qubits(), ErrQubitRange)
	}
}

// ApplyControlled applies a one-qubit catalog gate under a control qubit.
func (r *Register) ApplyControlled(g Gate, control, target int) error {
	return r.ApplyControlledGate(g.matrix, control, target)
}

// checkSingle runs the shape, unitarity and target checks shared by the
// 2×2 paths, in that order.
func (r *Register) checkSingle(op string, m Matrix, target int) error {
	if !m.hasShape(2) {
		return fmt.Errorf("%s: want 2x2: %w", op, ErrGateShape)
	}
	if !IsUnitary(m) {
		return fmt.Errorf("%s: %w", op, ErrNotUnitary)
	}
	return r.checkQubit(op, "target", target)
}

func (r *Register) checkQubit(op, role string, q int) error {
	if q < 0 || q >= r.numQubits {
		return fmt.Errorf("%s: %s qubit %d not in [0, %d): %w", op, role, q, r.numQubits, ErrQubitRange)
	}
	return nil
}
