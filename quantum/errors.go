package quantum

import "errors"

// Error kinds returned by register construction and gate application.
// Callers match them with errors.Is; the returned errors carry detail.
var (
	ErrGateShape       = errors.New("gate matrix has the wrong dimensions")
	ErrNotUnitary      = errors.New("gate matrix is not unitary")
	ErrQubitRange      = errors.New("qubit index out of range")
	ErrQubitConflict   = errors.New("control and target qubit must differ")
	ErrAmplitudeLength = errors.New("amplitude count must be a power of two and at least 2")
	ErrNilRegister     = errors.New("nil register")
	ErrZeroNorm        = errors.New("amplitudes have zero norm")
)
