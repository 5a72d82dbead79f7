package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"qsim/quantum"
)

// transcript prints labelled register listings and logs rejected gate
// applications. The first write error sticks and is returned by err.
type transcript struct {
	w      io.Writer
	logger *log.Logger
	opts   renderOptions
	werr   error
}

func newTranscript(w io.Writer, logger *log.Logger, opts renderOptions) *transcript {
	return &transcript{w: w, logger: logger, opts: opts}
}

func (t *transcript) println(s string) {
	if t.werr != nil {
		return
	}
	_, t.werr = fmt.Fprintln(t.w, s)
}

func (t *transcript) note(s string) {
	t.println(noteStyle.Render(s))
	t.println("")
}

func (t *transcript) title(s string) {
	t.println(titleStyle.Render(s))
}

func (t *transcript) show(r *quantum.Register) {
	t.println(renderInitialized(r, t.opts.precision))
	t.println(renderState(r, t.opts))
}

// step applies g to r, prints the result under label, then applies g again
// to restore r. Every gate used here is its own inverse.
func (t *transcript) step(r *quantum.Register, label string, g quantum.Gate, qubits ...int) {
	t.title(label)
	if t.apply(r, g, qubits...) != nil {
		return
	}
	t.println(renderState(r, t.opts))
	t.apply(r, g, qubits...)
}

// apply returns the rejection, if any, after logging it with the gate and
// qubits and showing it in the transcript.
func (t *transcript) apply(r *quantum.Register, g quantum.Gate, qubits ...int) error {
	if err := r.Apply(g, qubits...); err != nil {
		t.logger.Error("gate rejected", "gate", g.Name(), "qubits", qubits, "err", err)
		t.println(errorStyle.Render("rejected: " + err.Error()))
		t.println("")
		return err
	}
	t.logger.Debug("gate applied", "gate", g.Name(), "qubits", qubits)
	return nil
}

func (t *transcript) applyControlled(r *quantum.Register, g quantum.Gate, control, target int) error {
	if err := r.ApplyControlled(g, control, target); err != nil {
		t.logger.Error("gate rejected", "gate", g.Name(), "control", control, "target", target, "err", err)
		t.println(errorStyle.Render("rejected: " + err.Error()))
		t.println("")
		return err
	}
	t.logger.Debug("gate applied", "gate", g.Name(), "control", control, "target", target)
	return nil
}

func (t *transcript) err() error {
	if t.werr != nil {
		return fmt.Errorf("write transcript: %w", t.werr)
	}
	return nil
}

// runDemo prints the fixed walkthrough: one qubit under each Pauli gate and
// Hadamard, the same on a composed pair, a Bell pair, and a few rejected
// gate applications.
func runDemo(w io.Writer, logger *log.Logger, cfg *Config) error {
	t := newTranscript(w, logger, optionsFromConfig(cfg))
	t.println("")
	t.note("In this test qubits will always be reset to their initial state before applying the next gate.")

	qubit1, err := quantum.NewRegister([]complex128{0.6, 0.8})
	if err != nil {
		return err
	}
	t.show(qubit1)
	t.step(qubit1, "Applying X Gate: X|psi_0>", quantum.PauliX, 0)
	t.step(qubit1, "Applying Y Gate: Y|psi_0>", quantum.PauliY, 0)
	t.step(qubit1, "Applying Z Gate: Z|psi_0>", quantum.PauliZ, 0)
	t.step(qubit1, "Applying Hadamard Gate: H|psi_0>", quantum.Hadamard, 0)

	qubit2, err := quantum.NewRegister([]complex128{-0.8, 0.6})
	if err != nil {
		return err
	}
	pair, err := quantum.Compose(qubit1, qubit2)
	if err != nil {
		return err
	}
	t.show(pair)
	t.step(pair, "Applying X Gate to qubit 0: X|psi_0>", quantum.PauliX, 0)
	t.step(pair, "Applying Y Gate to qubit 1: Y|psi_1>", quantum.PauliY, 1)
	t.step(pair, "Applying Z Gate to qubit 0: Z|psi_0>", quantum.PauliZ, 0)
	t.step(pair, "Applying Hadamard gate to qubit 0: H|psi_0>", quantum.Hadamard, 0)

	if err := demoBell(t); err != nil {
		return err
	}
	if err := demoQubitView(t); err != nil {
		return err
	}
	demoRejections(t, qubit1)

	return t.err()
}

// demoBell entangles two ground-state qubits: H on qubit 1 then CNOT with
// qubit 1 as control, once through the controlled path and once through the
// 4×4 matrix. Every gate here is valid on a two-qubit register, so a
// rejection is returned rather than shown as part of the walkthrough.
func demoBell(t *transcript) error {
	zero, err := quantum.NewGroundState(1)
	if err != nil {
		return err
	}
	pair, err := quantum.Compose(zero, zero)
	if err != nil {
		return err
	}
	t.show(pair)

	t.title("Applying CNOT Gate to qubits: CNOT(|psi_0> (x) |psi_1>)")
	if err := t.applyControlled(pair, quantum.PauliX, 0, 1); err != nil {
		return fmt.Errorf("bell demo: %w", err)
	}
	t.println(renderState(pair, t.opts))

	bell := pair.Clone()
	t.title("Applying H to qubit 1 then CNOT(control 1, target 0)")
	if err := t.apply(bell, quantum.Hadamard, 1); err != nil {
		return fmt.Errorf("bell demo: %w", err)
	}
	if err := t.applyControlled(bell, quantum.PauliX, 1, 0); err != nil {
		return fmt.Errorf("bell demo: %w", err)
	}
	t.println(renderState(bell, t.opts))

	viaMatrix := pair.Clone()
	t.title("Same Bell pair through the 4×4 CX matrix")
	if err := t.apply(viaMatrix, quantum.Hadamard, 1); err != nil {
		return fmt.Errorf("bell demo: %w", err)
	}
	if err := t.apply(viaMatrix, quantum.CNOT, 1, 0); err != nil {
		return fmt.Errorf("bell demo: %w", err)
	}
	t.println(renderState(viaMatrix, t.opts))
	return nil
}

func demoQubitView(t *transcript) error {
	q, err := quantum.NewQubit(3, 4)
	if err != nil {
		return err
	}
	t.title("Single qubit view, normalized from (3, 4)")
	t.println(q.String())
	if err := q.Apply(quantum.Hadamard); err != nil {
		t.logger.Error("gate rejected", "gate", quantum.Hadamard.Name(), "err", err)
		return fmt.Errorf("qubit view demo: %w", err)
	}
	t.title("H on the single qubit view")
	t.println(q.String())
	t.println("")
	return nil
}

// demoRejections shows that malformed gate applications leave the register
// untouched. Rejections are expected here and not returned.
func demoRejections(t *transcript, r *quantum.Register) {
	t.title("Applying an all-ones matrix (not unitary)")
	ones := quantum.NewGate("ONES", quantum.Matrix{{1, 1}, {1, 1}})
	t.apply(r, ones, 0)

	t.title(fmt.Sprintf("Applying X to qubit %d of a %d-qubit register", r.NumQubits(), r.NumQubits()))
	t.apply(r, quantum.PauliX, r.NumQubits())

	t.title("Register after the rejected applications")
	t.println(renderState(r, t.opts))
}
