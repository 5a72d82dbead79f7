package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qsim/quantum"
)

func TestRunDemo(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := NewConfig()
	if err := runDemo(&out, newLogger(&logs, cfg), cfg); err != nil {
		t.Fatalf("runDemo: %v", err)
	}

	transcript := out.String()
	for _, want := range []string{
		"reset to their initial state",
		"Initialized register (1 qubits)",
		"Applying X Gate: X|psi_0>",
		"0.8000+0.0000i",
		"0.0000-0.8000i", // Y|psi> = [-0.8i, 0.6i]
		"Applying Hadamard gate to qubit 0: H|psi_0>",
		"Initialized register (2 qubits)",
		"Same Bell pair through the 4×4 CX matrix",
		"H on the single qubit view",
		"rejected: apply gate",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript is missing %q", want)
		}
	}

	// Each restore returns qubit1 to [0.6, 0.8] and the rejected gates
	// leave it there.
	tail := transcript[strings.LastIndex(transcript, "Register after the rejected applications"):]
	if !strings.Contains(tail, "0.6000+0.0000i") || !strings.Contains(tail, "0.8000+0.0000i") {
		t.Errorf("register changed by rejected gates:\n%s", tail)
	}

	logged := logs.String()
	if strings.Count(logged, "gate rejected") != 2 {
		t.Errorf("expected 2 rejections logged, got:\n%s", logged)
	}
	if !strings.Contains(logged, "not unitary") || !strings.Contains(logged, "out of range") {
		t.Errorf("rejections should carry their cause:\n%s", logged)
	}
}

func TestTranscriptReturnsRejections(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := NewConfig()
	tr := newTranscript(&out, newLogger(&logs, cfg), optionsFromConfig(cfg))

	r, err := quantum.NewGroundState(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.apply(r, quantum.PauliX, 2); !errors.Is(err, quantum.ErrQubitRange) {
		t.Errorf("apply on q[2]: got %v, want ErrQubitRange", err)
	}
	if err := tr.applyControlled(r, quantum.PauliX, 1, 1); !errors.Is(err, quantum.ErrQubitConflict) {
		t.Errorf("controlled on one qubit: got %v, want ErrQubitConflict", err)
	}
	if err := tr.apply(r, quantum.CNOT, 1, 0); err != nil {
		t.Errorf("valid CNOT rejected: %v", err)
	}
	if strings.Count(logs.String(), "gate rejected") != 2 || strings.Count(out.String(), "rejected: ") != 2 {
		t.Errorf("rejections should be logged and shown:\n%s\n%s", logs.String(), out.String())
	}
}

func TestRunDemoThreshold(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := NewConfig()
	cfg.Threshold = 0
	if err := runDemo(&out, newLogger(&logs, cfg), cfg); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	bell := out.String()
	bell = bell[strings.Index(bell, "Same Bell pair"):]
	bell = bell[:strings.Index(bell, "Single qubit view")]
	if strings.Contains(bell, "|01⟩") || strings.Contains(bell, "|10⟩") {
		t.Errorf("zero-probability states should be hidden:\n%s", bell)
	}
	if !strings.Contains(bell, "|00⟩") || !strings.Contains(bell, "|11⟩") {
		t.Errorf("Bell pair should list |00⟩ and |11⟩:\n%s", bell)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "bell.qasm")
	bad := filepath.Join(dir, "bad.qasm")
	if err := os.WriteFile(good, []byte("qreg q[2];\nh q[1];\ncx q[1], q[0];\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("qreg q[1];\nx q[2];\nh q[0];\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"run", "--precision=2", good})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run %s: %v", good, err)
	}
	for _, want := range []string{"h q[1];", "cx q[1], q[0];", "0.71+0.00i", "|11⟩"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("run output is missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	cmd = newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"run", bad})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("run %s: error = %v, want the rejected line", bad, err)
	}
	if !strings.Contains(out.String(), "h q[0];") {
		t.Errorf("steps after a rejection should still run:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "step rejected") {
		t.Errorf("rejection was not logged:\n%s", errOut.String())
	}

	huge := filepath.Join(dir, "huge.qasm")
	if err := os.WriteFile(huge, []byte("x q[61];\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd = newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"run", huge})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "q[61]") {
		t.Errorf("run %s: error = %v, want the qubit cap", huge, err)
	}

	cmd = newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"run", filepath.Join(dir, "missing.qasm")})
	if err := cmd.Execute(); err == nil {
		t.Error("run of a missing file should fail")
	}
}

func TestDemoIsDefaultCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--log-level=error"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("qsim: %v", err)
	}
	if !strings.Contains(out.String(), "Applying X Gate") {
		t.Error("root command should print the demo transcript")
	}

	cmd = newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"demo", "--log-level=loud"})
	if err := cmd.Execute(); err == nil {
		t.Error("an invalid log level should fail")
	}
}
