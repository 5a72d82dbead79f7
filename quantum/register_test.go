package quantum

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func ampsClose(got, want []complex128) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if cmplx.Abs(got[i]-want[i]) > tolerance {
			return false
		}
	}
	return true
}

// randomState returns a normalized random vector of 2^n amplitudes.
func randomState(rng *rand.Rand, n int) []complex128 {
	amps := make([]complex128, 1<<n)
	norm := 0.0
	for i := range amps {
		amps[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		norm += probability(amps[i])
	}
	scale := complex(1/math.Sqrt(norm), 0)
	for i := range amps {
		amps[i] *= scale
	}
	return amps
}

func TestNewRegister(t *testing.T) {
	Convey("Given raw amplitudes", t, func() {
		Convey("A power-of-two length sets the qubit count", func() {
			for _, n := range []int{2, 4, 8, 16} {
				r, err := NewRegister(make([]complex128, n))
				So(err, ShouldBeNil)
				So(r.Len(), ShouldEqual, n)
				So(1<<r.NumQubits(), ShouldEqual, n)
			}
		})

		Convey("Other lengths are rejected", func() {
			for _, n := range []int{0, 1, 3, 6, 12} {
				r, err := NewRegister(make([]complex128, n))
				So(r, ShouldBeNil)
				So(errors.Is(err, ErrAmplitudeLength), ShouldBeTrue)
			}
		})

		Convey("The register does not alias the caller's slice", func() {
			amps := []complex128{0.6, 0.8}
			r, err := NewRegister(amps)
			So(err, ShouldBeNil)
			amps[0] = 42
			So(r.Amplitude(0), ShouldEqual, complex128(0.6))

			out := r.Amplitudes()
			out[1] = 42
			So(r.Amplitude(1), ShouldEqual, complex128(0.8))
		})
	})
}

func TestNewGroundState(t *testing.T) {
	Convey("Given a qubit count", t, func() {
		r, err := NewGroundState(3)
		So(err, ShouldBeNil)
		So(r.NumQubits(), ShouldEqual, 3)
		So(r.Amplitude(0), ShouldEqual, complex128(1))
		So(r.Norm(), ShouldAlmostEqual, 1.0, tolerance)

		_, err = NewGroundState(0)
		So(errors.Is(err, ErrQubitRange), ShouldBeTrue)

		Convey("Counts above MaxQubits are refused before allocating", func() {
			for _, n := range []int{MaxQubits + 1, 40, 61, 64} {
				r, err := NewGroundState(n)
				So(r, ShouldBeNil)
				So(errors.Is(err, ErrQubitRange), ShouldBeTrue)
			}
		})
	})
}

func TestCompose(t *testing.T) {
	Convey("Given registers to compose", t, func() {
		Convey("No operands give the single-qubit ground state", func() {
			r, err := Compose()
			So(err, ShouldBeNil)
			So(r.NumQubits(), ShouldEqual, 1)
			So(ampsClose(r.Amplitudes(), []complex128{1, 0}), ShouldBeTrue)
		})

		Convey("A composite above MaxQubits is refused", func() {
			half, err := NewGroundState(MaxQubits/2 + 1)
			So(err, ShouldBeNil)
			r, err := Compose(half, half)
			So(r, ShouldBeNil)
			So(errors.Is(err, ErrQubitRange), ShouldBeTrue)
		})

		Convey("Two ground states give |00⟩", func() {
			zero, _ := NewRegister([]complex128{1, 0})
			r, err := Compose(zero, zero)
			So(err, ShouldBeNil)
			So(r.NumQubits(), ShouldEqual, 2)
			So(ampsClose(r.Amplitudes(), []complex128{1, 0, 0, 0}), ShouldBeTrue)
		})

		Convey("The first operand is the most significant", func() {
			a, _ := NewRegister([]complex128{0.6, 0.8})
			b, _ := NewRegister([]complex128{-0.8, 0.6})

			ab, err := Compose(a, b)
			So(err, ShouldBeNil)
			So(ampsClose(ab.Amplitudes(), []complex128{-0.48, 0.36, -0.64, 0.48}), ShouldBeTrue)

			ba, err := Compose(b, a)
			So(err, ShouldBeNil)
			So(ab.Equal(ba, tolerance), ShouldBeFalse)
		})

		Convey("Qubit counts add up", func() {
			one, _ := NewGroundState(1)
			two, _ := NewGroundState(2)
			r, err := Compose(two, one, two)
			So(err, ShouldBeNil)
			So(r.NumQubits(), ShouldEqual, 5)
			So(r.Len(), ShouldEqual, 32)
		})

		Convey("A nil operand is an error", func() {
			one, _ := NewGroundState(1)
			_, err := Compose(one, nil)
			So(errors.Is(err, ErrNilRegister), ShouldBeTrue)
		})
	})
}

func TestObservables(t *testing.T) {
	Convey("Given a two-qubit register", t, func() {
		r, _ := NewRegister([]complex128{0.5, 0.5i, -0.5, 0.5})

		Convey("Probabilities and norm follow |a|²", func() {
			for _, p := range r.Probabilities() {
				So(p, ShouldAlmostEqual, 0.25, tolerance)
			}
			So(r.Norm(), ShouldAlmostEqual, 1.0, tolerance)
		})

		Convey("Basis labels put the highest qubit first", func() {
			So(r.BasisLabel(0), ShouldEqual, "00")
			So(r.BasisLabel(1), ShouldEqual, "01")
			So(r.BasisLabel(2), ShouldEqual, "10")
		})

		Convey("Qubit marginals are indexed by qubit", func() {
			x, _ := NewRegister([]complex128{0, 1, 0, 0})
			probs := x.QubitProbabilities()
			So(probs[0].Prob1, ShouldAlmostEqual, 1.0, tolerance)
			So(probs[1].Prob0, ShouldAlmostEqual, 1.0, tolerance)
		})

		Convey("Basis states honor the threshold", func() {
			x, _ := NewRegister([]complex128{0, 1, 0, 0})
			states := x.BasisStates(1e-10)
			So(len(states), ShouldEqual, 1)
			So(states[0].Index, ShouldEqual, 1)
			So(states[0].Label, ShouldEqual, "01")
			So(states[0].Phase, ShouldAlmostEqual, 0, tolerance)
			So(len(x.BasisStates(-1)), ShouldEqual, 4)
		})

		Convey("Clones are independent", func() {
			c := r.Clone()
			So(c.ApplyGate(PauliX.Matrix(), 0), ShouldBeNil)
			So(c.Equal(r, tolerance), ShouldBeFalse)
			So(r.Amplitude(1), ShouldEqual, complex128(0.5i))
		})
	})
}
