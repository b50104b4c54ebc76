package layout

// MeasureFunc returns the rendered width of text in millimetres
type MeasureFunc func(text string) float64

// Metrics measures text set in a given font. The PDF backend provides one
// backed by real font metrics; ApproxMetrics needs no backend.
type Metrics interface {
	Measure(text string, font Font) float64
}

// MeasureWith binds m to font
func MeasureWith(m Metrics, font Font) MeasureFunc {
	return func(text string) float64 {
		return m.Measure(text, font)
	}
}

// ApproxMetrics estimates widths from per-class advance factors close to
// Helvetica. It is deterministic and side-effect free.
type ApproxMetrics struct{}

// Measure implements Metrics
func (ApproxMetrics) Measure(text string, font Font) float64 {
	em := font.Size * PointsToMM
	bold := font.Style == "B" || font.Style == "BI"

	var units float64
	for _, r := range text {
		units += advance(r)
	}
	if bold {
		units *= 1.06
	}
	return units * em
}

// advance returns a rune's width in em
func advance(r rune) float64 {
	switch {
	case r == ' ' || r == '.' || r == ',' || r == ':' || r == ';' || r == '\'' || r == '|' || r == '!':
		return 0.278
	case r == 'i' || r == 'j' || r == 'l' || r == 'I':
		return 0.222
	case r == 'f' || r == 't' || r == 'r' || r == '(' || r == ')' || r == '-' || r == '/':
		return 0.333
	case r == 'm' || r == 'w' || r == 'M' || r == 'W':
		return 0.833
	case r >= '0' && r <= '9':
		return 0.556
	case r >= 'A' && r <= 'Z':
		return 0.667
	case r >= 'a' && r <= 'z':
		return 0.5
	default:
		return 0.6
	}
}

// Approx is a MeasureFunc for font using ApproxMetrics
func Approx(font Font) MeasureFunc {
	return MeasureWith(ApproxMetrics{}, font)
}
