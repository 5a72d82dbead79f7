package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qsim/quantum"
)

// Pre-compiled regexps for the step script, a QASM subset.
var (
	qregRegex            = regexp.MustCompile(`^qreg\s+q\[(\d+)\];?$`)
	initRegex            = regexp.MustCompile(`^init\s+(.+?);?$`)
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(([^)]*)\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(([^)]*)\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	unsupportedRegex     = regexp.MustCompile(`^(measure|reset|barrier|if)\b`)
)

var errUnknownGate = errors.New("unknown gate")

// rotations maps parameterized one-qubit gate names to their constructors.
var rotations = map[string]func(float64) quantum.Gate{
	"rx": quantum.RX,
	"ry": quantum.RY,
	"rz": quantum.RZ,
	"p":  quantum.Phase,
	"u1": quantum.Phase,
}

// Step is one gate application: a gate name as written in the script, its
// angles, and the qubits it acts on. For controlled gates the control comes
// first.
type Step struct {
	Name   string
	Params []float64
	Qubits []int
	Line   int

	gate       quantum.Gate
	controlled bool
}

// NewStep resolves name against the gate catalog and checks that the
// number of qubits and angles fits the gate.
func NewStep(name string, params []float64, qubits ...int) (Step, error) {
	name = strings.ToLower(name)
	if name == "cnot" {
		name = "cx"
	}
	s := Step{Name: name, Params: params, Qubits: qubits}

	var err error
	s.gate, s.controlled, err = resolveGate(name, params)
	if err != nil {
		return Step{}, err
	}

	want := s.gate.Qubits()
	if s.controlled {
		want = 2
	}
	if len(qubits) != want {
		return Step{}, fmt.Errorf("%s takes %d qubit(s), got %d", name, want, len(qubits))
	}
	return s, nil
}

// resolveGate finds the gate for a script name. Names that are a "c" prefix
// on a one-qubit gate resolve to that gate under a control.
func resolveGate(name string, params []float64) (quantum.Gate, bool, error) {
	if g, err := singleQubitGate(name, params); !errors.Is(err, errUnknownGate) {
		return g, false, err
	}
	if base, ok := strings.CutPrefix(name, "c"); ok {
		if g, err := singleQubitGate(base, params); !errors.Is(err, errUnknownGate) {
			return g, true, err
		}
	}
	if g, ok := quantum.Lookup(name); ok && g.Qubits() == 2 {
		if len(params) > 0 {
			return quantum.Gate{}, false, fmt.Errorf("%s takes no angle", name)
		}
		return g, false, nil
	}
	return quantum.Gate{}, false, fmt.Errorf("%q: %w", name, errUnknownGate)
}

func singleQubitGate(name string, params []float64) (quantum.Gate, error) {
	if ctor, ok := rotations[name]; ok {
		if len(params) != 1 {
			return quantum.Gate{}, fmt.Errorf("%s takes 1 angle, got %d", name, len(params))
		}
		return ctor(params[0]), nil
	}
	if g, ok := quantum.Lookup(name); ok && g.Qubits() == 1 {
		if len(params) > 0 {
			return quantum.Gate{}, fmt.Errorf("%s takes no angle", name)
		}
		return g, nil
	}
	return quantum.Gate{}, errUnknownGate
}

// Apply runs the step against r. A rejected step leaves r unchanged.
func (s Step) Apply(r *quantum.Register) error {
	if s.controlled {
		return r.ApplyControlled(s.gate, s.Qubits[0], s.Qubits[1])
	}
	return r.Apply(s.gate, s.Qubits...)
}

// Symbol returns the display symbol of the resolved gate.
func (s Step) Symbol() string {
	if s.controlled {
		return "●─" + s.gate.Symbol()
	}
	return s.gate.Symbol()
}

// String writes the step as a script line.
func (s Step) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	if len(s.Params) > 0 {
		parts := make([]string, len(s.Params))
		for i, p := range s.Params {
			parts[i] = formatAngle(p)
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ","))
	}
	for i, q := range s.Qubits {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	sb.WriteByte(';')
	return sb.String()
}

// Program is a parsed step script: the starting register and the steps to
// replay on it, in order.
type Program struct {
	NumQubits int
	Init      []complex128
	Steps     []Step
}

// ParseProgram parses a step script. Lines starting with OPENQASM, include,
// creg or // are ignored.
func ParseProgram(src string) (*Program, error) {
	p := &Program{}
	maxQubit := -1

	for i, line := range strings.Split(src, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" ||
			strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") {
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > quantum.MaxQubits {
				return nil, fmt.Errorf("line %d: qreg q[%s]: need 1 to %d qubits: %w",
					lineNo, m[1], quantum.MaxQubits, quantum.ErrQubitRange)
			}
			p.NumQubits = n
			continue
		}

		if m := initRegex.FindStringSubmatch(line); m != nil {
			amps, err := parseInit(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			p.Init = amps
			continue
		}

		if m := unsupportedRegex.FindStringSubmatch(line); m != nil {
			return nil, fmt.Errorf("line %d: %s is not supported", lineNo, m[1])
		}

		step, err := parseStepLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		step.Line = lineNo
		for _, q := range step.Qubits {
			maxQubit = max(maxQubit, q)
		}
		p.Steps = append(p.Steps, step)
	}

	if p.Init != nil {
		r, err := quantum.NewRegister(p.Init)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if p.NumQubits != 0 && p.NumQubits != r.NumQubits() {
			return nil, fmt.Errorf("init has %d qubits but qreg declares %d", r.NumQubits(), p.NumQubits)
		}
		p.NumQubits = r.NumQubits()
	}
	if p.NumQubits == 0 {
		p.NumQubits = max(maxQubit+1, 1)
	}

	return p, nil
}

func parseStepLine(line string) (Step, error) {
	var name, angles string
	var indices []string
	if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
		name, angles, indices = m[1], m[2], m[3:5]
	} else if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
		name, angles, indices = m[1], m[2], m[3:4]
	} else if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		name, indices = m[1], m[2:4]
	} else if m := singleGateRegex.FindStringSubmatch(line); m != nil {
		name, indices = m[1], m[2:3]
	} else {
		return Step{}, fmt.Errorf("cannot parse %q", line)
	}

	params, err := parseAngles(angles)
	if err != nil {
		return Step{}, err
	}
	qubits := make([]int, len(indices))
	for i, idx := range indices {
		q, err := strconv.Atoi(idx)
		if err != nil || q >= quantum.MaxQubits {
			return Step{}, fmt.Errorf("q[%s]: at most %d qubits: %w", idx, quantum.MaxQubits, quantum.ErrQubitRange)
		}
		qubits[i] = q
	}
	return NewStep(name, params, qubits...)
}

func parseInit(list string) ([]complex128, error) {
	var amps []complex128
	for part := range strings.SplitSeq(list, ",") {
		amp, err := parseAmplitude(part)
		if err != nil {
			return nil, err
		}
		amps = append(amps, amp)
	}
	return amps, nil
}

// NewRegister builds the starting register: the init amplitudes when given,
// the ground state otherwise.
func (p *Program) NewRegister() (*quantum.Register, error) {
	if p.Init != nil {
		return quantum.NewRegister(p.Init)
	}
	return quantum.NewGroundState(p.NumQubits)
}

// Run applies every step to r in order. A rejected step is reported to
// visit and skipped; the remaining steps still run. The returned error
// joins every rejection.
func (p *Program) Run(r *quantum.Register, visit func(Step, error)) error {
	var errs []error
	for _, step := range p.Steps {
		err := step.Apply(r)
		if err != nil {
			err = fmt.Errorf("%s: %w", step, err)
			if step.Line > 0 {
				err = fmt.Errorf("line %d: %w", step.Line, err)
			}
			errs = append(errs, err)
		}
		if visit != nil {
			visit(step, err)
		}
	}
	return errors.Join(errs...)
}

// String writes the program back as a script.
func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", p.NumQubits)
	if p.Init != nil {
		parts := make([]string, len(p.Init))
		for i, a := range p.Init {
			parts[i] = formatAmplitude(a)
		}
		fmt.Fprintf(&sb, "init %s;\n", strings.Join(parts, ", "))
	}
	sb.WriteString("\n")
	for _, step := range p.Steps {
		sb.WriteString(step.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
