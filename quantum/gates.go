package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Gate is a named, immutable unitary acting on one or two qubits.
type Gate struct {
	name   string
	symbol string
	matrix Matrix
}

// NewGate wraps an ad hoc matrix. It does not validate m; gate application
// does.
func NewGate(name string, m Matrix) Gate {
	return Gate{name: name, symbol: name, matrix: m.Clone()}
}

func (g Gate) Name() string   { return g.name }
func (g Gate) Symbol() string { return g.symbol }

// Matrix returns a copy of the gate matrix.
func (g Gate) Matrix() Matrix {
	return g.matrix.Clone()
}

// Qubits returns how many qubits the gate acts on, or 0 for a matrix that
// is neither 2×2 nor 4×4.
func (g Gate) Qubits() int {
	switch {
	case g.matrix.hasShape(2):
		return 1
	case g.matrix.hasShape(4):
		return 2
	default:
		return 0
	}
}

func (g Gate) String() string {
	return g.name
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Fixed gates.
var (
	Identity = Gate{"I", "I", Matrix{
		{1, 0},
		{0, 1},
	}}
	PauliX = Gate{"X", "X", Matrix{
		{0, 1},
		{1, 0},
	}}
	PauliY = Gate{"Y", "Y", Matrix{
		{0, -1i},
		{1i, 0},
	}}
	PauliZ = Gate{"Z", "Z", Matrix{
		{1, 0},
		{0, -1},
	}}
	Hadamard = Gate{"H", "H", Matrix{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}}
	S = Gate{"S", "S", Matrix{
		{1, 0},
		{0, 1i},
	}}
	Sdg = Gate{"SDG", "S†", Matrix{
		{1, 0},
		{0, -1i},
	}}
	T = Gate{"T", "T", Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, math.Pi/4))},
	}}
	Tdg = Gate{"TDG", "T†", Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, -math.Pi/4))},
	}}
	SX = Gate{"SX", "√X", Matrix{
		{complex(0.5, 0.5), complex(0.5, -0.5)},
		{complex(0.5, -0.5), complex(0.5, 0.5)},
	}}

	CNOT = Gate{"CX", "●─⊕", Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}}
	CZ = Gate{"CZ", "●─●", Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}}
	SWAP = Gate{"SWAP", "×─×", Matrix{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}}
)

var catalog = map[string]Gate{
	"i":    Identity,
	"id":   Identity,
	"x":    PauliX,
	"y":    PauliY,
	"z":    PauliZ,
	"h":    Hadamard,
	"s":    S,
	"sdg":  Sdg,
	"t":    T,
	"tdg":  Tdg,
	"sx":   SX,
	"cx":   CNOT,
	"cnot": CNOT,
	"cz":   CZ,
	"swap": SWAP,
}

// Lookup finds a fixed gate by case-insensitive name.
func Lookup(name string) (Gate, bool) {
	g, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// RX rotates about the X axis by theta.
func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Gate{"RX", "RX", Matrix{
		{c, js},
		{js, c},
	}}
}

// RY rotates about the Y axis by theta.
func RY(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Gate{"RY", "RY", Matrix{
		{c, -s},
		{s, c},
	}}
}

// RZ rotates about the Z axis by theta.
func RZ(theta float64) Gate {
	phase := cmplx.Exp(complex(0, theta/2))
	return Gate{"RZ", "RZ", Matrix{
		{cmplx.Conj(phase), 0},
		{0, phase},
	}}
}

// Phase multiplies the |1⟩ amplitude by e^{iλ}.
func Phase(lambda float64) Gate {
	return Gate{"P", "P", Matrix{
		{1, 0},
		{0, cmplx.Exp(complex(0, lambda))},
	}}
}

// Controlled returns the 4×4 gate diag(I, U) for a one-qubit payload U. The
// first qubit passed to ApplyTwoQubitGate is the control.
func Controlled(payload Gate) (Gate, error) {
	if payload.Qubits() != 1 {
		return Gate{}, fmt.Errorf("controlled %s: payload must be 2x2: %w", payload.name, ErrGateShape)
	}

	m := IdentityMatrix(4)
	for i := range 2 {
		for j := range 2 {
			m[2+i][2+j] = payload.matrix[i][j]
		}
	}
	name := "C" + payload.name
	return Gate{name: name, symbol: "●─" + payload.symbol, matrix: m}, nil
}
