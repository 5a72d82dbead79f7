package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches pi, 2pi, 2*pi, pi/2, 3*pi/4, -pi/2 and similar.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseAngle parses a rotation angle written as a plain number or a pi
// expression.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - Pi fractions: "pi", "pi/2", "3pi/4", "3*pi/4", "-2*pi/3"
func parseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty angle")
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, nil
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, fmt.Errorf("bad angle %q", s)
	}

	coeff := 1.0
	if m[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, fmt.Errorf("bad angle coefficient %q", m[2])
		}
	}
	result := coeff * math.Pi

	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, fmt.Errorf("bad angle denominator %q", m[3])
		}
		result /= denom
	}

	if m[1] == "-" {
		result = -result
	}
	return result, nil
}

// parseAngles parses a comma-separated angle list, skipping empty entries.
func parseAngles(input string) ([]float64, error) {
	var angles []float64
	for part := range strings.SplitSeq(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		val, err := parseAngle(part)
		if err != nil {
			return nil, err
		}
		angles = append(angles, val)
	}
	return angles, nil
}

// maxPiDenominator bounds the fractions of pi that formatAngle recognises.
const maxPiDenominator = 12

// formatAngle writes an angle as n*pi/d when it is within 1e-10 of such a
// fraction with d <= maxPiDenominator and |n| <= 4d, and as %g otherwise.
// Trying d in increasing order yields the reduced fraction.
func formatAngle(val float64) string {
	for d := 1; d <= maxPiDenominator && val != 0; d++ {
		n := math.Round(val / math.Pi * float64(d))
		if n == 0 || math.Abs(n) > float64(4*d) || math.Abs(val-n*math.Pi/float64(d)) > 1e-10 {
			continue
		}
		var sb strings.Builder
		switch n {
		case 1:
		case -1:
			sb.WriteString("-")
		default:
			fmt.Fprintf(&sb, "%d*", int(n))
		}
		sb.WriteString("pi")
		if d > 1 {
			fmt.Fprintf(&sb, "/%d", d)
		}
		return sb.String()
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// parseAmplitude parses a complex amplitude: "0.6", "-0.8", "0.5i",
// "(0.5+0.5i)", or any of these followed by "/sqrt2".
func parseAmplitude(s string) (complex128, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	scale := complex(1, 0)
	if rest, ok := strings.CutSuffix(strings.ToLower(s), "/sqrt2"); ok {
		s = rest
		scale = complex(1/math.Sqrt2, 0)
		if s == "" || s == "-" {
			s += "1"
		}
	}

	c, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, fmt.Errorf("bad amplitude %q", s)
	}
	return c * scale, nil
}

// formatAmplitude writes an amplitude so that parseAmplitude reads it back.
func formatAmplitude(c complex128) string {
	if imag(c) == 0 {
		return strconv.FormatFloat(real(c), 'g', -1, 64)
	}
	return strconv.FormatComplex(c, 'g', -1, 128)
}
