package main

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"qsim/quantum"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func bellRegister(t *testing.T) *quantum.Register {
	t.Helper()
	h := complex(1/math.Sqrt2, 0)
	r, err := quantum.NewRegister([]complex128{h, 0, 0, h})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		c         complex128
		precision int
		want      string
	}{
		{complex(0.6, -0.8), 2, "0.60-0.80i"},
		{0.8, 4, "0.8000+0.0000i"},
		{-1i, 1, "0.0-1.0i"},
	}
	for _, tt := range tests {
		if got := formatComplex(tt.c, tt.precision); got != tt.want {
			t.Errorf("formatComplex(%v, %d) = %q, want %q", tt.c, tt.precision, got, tt.want)
		}
	}
}

func TestRenderState(t *testing.T) {
	r := bellRegister(t)

	all := renderState(r, renderOptions{precision: 3, threshold: -1})
	if lines := strings.Split(strings.TrimSuffix(all, "\n"), "\n"); len(lines) != 4 {
		t.Fatalf("expected 4 basis lines, got %d:\n%s", len(lines), all)
	}
	for _, want := range []string{"50.00%", "0.707+0.000i", "|00⟩", "|01⟩", "|10⟩", "|11⟩", "0.00%"} {
		if !strings.Contains(all, want) {
			t.Errorf("expected %q in listing:\n%s", want, all)
		}
	}

	nonzero := renderState(r, renderOptions{precision: 3, threshold: 0})
	if strings.Contains(nonzero, "|01⟩") || !strings.Contains(nonzero, "|11⟩") {
		t.Errorf("threshold 0 should hide zero-probability states:\n%s", nonzero)
	}

	none := renderState(r, renderOptions{precision: 3, threshold: 0.9})
	if !strings.Contains(none, "no basis state above threshold") {
		t.Errorf("expected the empty notice, got:\n%s", none)
	}
}

func TestRenderStatePhase(t *testing.T) {
	r, err := quantum.NewRegister([]complex128{complex(0.6, 0), complex(0, 0.8)})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(renderState(r, renderOptions{precision: 2, threshold: -1}), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 basis lines, got %v", lines)
	}
	if !strings.Contains(lines[0], "∠+0.00π") || !strings.Contains(lines[1], "∠+0.50π") {
		t.Errorf("phases not shown:\n%s", strings.Join(lines, "\n"))
	}

	r, err = quantum.NewRegister([]complex128{0, -1})
	if err != nil {
		t.Fatal(err)
	}
	if got := renderState(r, renderOptions{precision: 2, threshold: 0}); !strings.Contains(got, "∠+1.00π |1⟩") {
		t.Errorf("-1 should show a phase of π, got %q", got)
	}
}

func TestProbBar(t *testing.T) {
	if got := strings.Count(probBar(1), "█"); got != barW {
		t.Errorf("full bar has %d cells, want %d", got, barW)
	}
	if got := strings.Count(probBar(0.5), "█"); got != barW/2 {
		t.Errorf("half bar has %d cells, want %d", got, barW/2)
	}
	if got := strings.Count(probBar(0), "█"); got != 0 {
		t.Errorf("empty bar has %d cells", got)
	}
}

func TestRenderInitialized(t *testing.T) {
	r, err := quantum.NewRegister([]complex128{0.6, 0.8})
	if err != nil {
		t.Fatal(err)
	}
	got := renderInitialized(r, 1)
	want := "Initialized register (1 qubits): |ψ⟩ = [0.6+0.0i 0.8+0.0i]"
	if got != want {
		t.Errorf("renderInitialized = %q, want %q", got, want)
	}
}

func TestRenderMarginals(t *testing.T) {
	r := bellRegister(t)
	got := renderMarginals(r, 0, -1)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 qubit lines, got:\n%s", got)
	}
	if !strings.Contains(lines[0], "q[1]") || !strings.Contains(lines[1], "▸ q[0]") {
		t.Errorf("expected q[1] first and the cursor on q[0]:\n%s", got)
	}
	if !strings.Contains(got, "P(1)=0.500") {
		t.Errorf("expected P(1)=0.500:\n%s", got)
	}
}

func TestOverlayAt(t *testing.T) {
	tests := []struct {
		name    string
		bg      string
		overlay string
		x, y    int
		want    string
	}{
		{"middle", "aaaaa\nbbbbb\nccccc", "XY", 1, 1, "aaaaa\nbXYbb\nccccc"},
		{"two lines", "aaaaa\nbbbbb\nccccc", "XY\nZW", 3, 1, "aaaaa\nbbbXY\ncccZW"},
		{"past line end", "ab", "XY", 4, 0, "ab  XY"},
		{"below frame", "ab", "XY", 0, 3, "ab"},
		{"wide runes", "│││││", "ψ", 2, 0, "││ψ││"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlayAt(tt.bg, tt.overlay, tt.x, tt.y); got != tt.want {
				t.Errorf("overlayAt = %q, want %q", got, tt.want)
			}
		})
	}
}
