package quantum

import "math/cmplx"

// UnitaryTolerance is the per-entry tolerance used by IsUnitary.
const UnitaryTolerance = 1e-6

// Matrix is a dense row-major complex matrix.
type Matrix [][]complex128

// IdentityMatrix returns the n×n identity.
func IdentityMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]complex128, n)
		m[i][i] = 1
	}
	return m
}

// IsSquare reports whether every row has as many entries as there are rows.
func (m Matrix) IsSquare() bool {
	if len(m) == 0 {
		return false
	}
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// hasShape reports whether m is exactly n×n.
func (m Matrix) hasShape(n int) bool {
	return len(m) == n && m.IsSquare()
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

// Dagger returns the conjugate transpose. m must be square.
func (m Matrix) Dagger() Matrix {
	n := len(m)
	out := make(Matrix, n)
	for i := range out {
		out[i] = make([]complex128, n)
	}
	for i := range n {
		for j := range n {
			out[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return out
}

// Mul returns m·o. Both must be square with the same dimension.
func (m Matrix) Mul(o Matrix) Matrix {
	n := len(m)
	out := make(Matrix, n)
	for i := range n {
		out[i] = make([]complex128, n)
		for j := range n {
			var sum complex128
			for k := range n {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// IsUnitary reports whether U·U† and U†·U are both the identity within
// UnitaryTolerance. Non-square and empty matrices are never unitary.
func IsUnitary(m Matrix) bool {
	if !m.IsSquare() {
		return false
	}

	dagger := m.Dagger()
	return isIdentity(m.Mul(dagger)) && isIdentity(dagger.Mul(m))
}

func isIdentity(m Matrix) bool {
	for i, row := range m {
		for j, v := range row {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(v-want) > UnitaryTolerance {
				return false
			}
		}
	}
	return true
}
