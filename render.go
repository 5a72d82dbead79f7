package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qsim/quantum"
)

// ──────────────────────────── Register listing ────────────────────────────

type renderOptions struct {
	precision int
	threshold float64 // hide basis states at or below this probability; <0 shows all
}

func optionsFromConfig(cfg *Config) renderOptions {
	return renderOptions{precision: cfg.Precision, threshold: cfg.Threshold}
}

// formatComplex writes c as "re+imi" with a fixed number of decimals.
func formatComplex(c complex128, precision int) string {
	return fmt.Sprintf("%.*f%+.*fi", precision, real(c), precision, imag(c))
}

// probBar draws a probability in [0, 1] as a bar of barW cells.
func probBar(prob float64) string {
	n := min(max(int(prob*barW+0.5), 0), barW)
	return barStyle.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("·", barW-n))
}

// renderState lists one basis state per line: probability, amplitude,
// phase in units of π and basis label, most significant qubit first.
func renderState(r *quantum.Register, opts renderOptions) string {
	var sb strings.Builder
	states := r.BasisStates(opts.threshold)
	if len(states) == 0 {
		sb.WriteString(dimStyle.Render("  (no basis state above threshold)"))
		sb.WriteString("\n")
	}
	for _, s := range states {
		fmt.Fprintf(&sb, "%7.2f%% : %s ∠%+.2fπ %s %s\n",
			s.Prob*100,
			formatComplex(s.Amplitude, opts.precision),
			s.Phase/math.Pi,
			basisStyle.Render("|"+s.Label+"⟩"),
			probBar(s.Prob))
	}
	return sb.String()
}

// renderInitialized is the one-line summary printed when a register is built.
func renderInitialized(r *quantum.Register, precision int) string {
	amps := r.Amplitudes()
	parts := make([]string, len(amps))
	for i, a := range amps {
		parts[i] = formatComplex(a, precision)
	}
	return initStyle.Render(fmt.Sprintf("Initialized register (%d qubits): |ψ⟩ = [%s]",
		r.NumQubits(), strings.Join(parts, " ")))
}

// renderMarginals lists P(0)/P(1) per qubit, highest qubit first, marking
// the cursor and the selected qubit.
func renderMarginals(r *quantum.Register, cursor, selected int) string {
	var sb strings.Builder
	probs := r.QubitProbabilities()
	for q := len(probs) - 1; q >= 0; q-- {
		label := fmt.Sprintf("q[%d]", q)
		switch q {
		case selected:
			label = targetSelectStyle.Render("▸ " + label)
		case cursor:
			label = cursorStyle.Render("▸ " + label)
		default:
			label = basisStyle.Render("  " + label)
		}
		fmt.Fprintf(&sb, "%s  P(1)=%.3f %s\n", label, probs[q].Prob1, probBar(probs[q].Prob1))
	}
	return sb.String()
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// visible column x, line y. ANSI sequences on either side are preserved.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := lipgloss.Width(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+lipgloss.Width(overlay), "")
	return prefix + overlay + suffix
}
