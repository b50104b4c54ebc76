package layout

import (
	"strings"
)

// Ellipsis marks shortened text
const Ellipsis = "..."

// MinRunes is the length at or below which text is never given an ellipsis
const MinRunes = 3

// Truncate returns text unchanged when it fits maxWidth. Otherwise it returns
// the longest prefix, followed by Ellipsis, whose measured width is within
// maxWidth. The result never measures wider than maxWidth: in a box too
// narrow for any prefix plus Ellipsis it falls back to Ellipsis alone, then
// to the longest bare prefix that fits, then to "". Text of at most MinRunes
// runes is only ever cut to a bare prefix.
//
// The result depends only on its arguments. A nil measure counts runes.
func Truncate(text string, maxWidth float64, measure MeasureFunc) string {
	if measure == nil {
		measure = runeCount
	}

	if measure(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	if len(runes) > MinRunes {
		for n := len(runes) - 1; n > 0; n-- {
			candidate := string(runes[:n]) + Ellipsis
			if measure(candidate) <= maxWidth {
				return candidate
			}
		}
		if measure(Ellipsis) <= maxWidth {
			return Ellipsis
		}
	}

	for n := len(runes) - 1; n > 0; n-- {
		if candidate := string(runes[:n]); measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

func runeCount(s string) float64 {
	return float64(len([]rune(s)))
}

// Fits reports whether text fits maxWidth without truncation
func Fits(text string, maxWidth float64, measure MeasureFunc) bool {
	if measure == nil {
		measure = runeCount
	}
	return measure(text) <= maxWidth
}

// Wrap breaks text into lines no wider than maxWidth, splitting at spaces and
// at explicit newlines. A single word wider than maxWidth is truncated. With
// maxLines > 0 the overflow is folded into the last line, which is then
// truncated.
func Wrap(text string, maxWidth float64, maxLines int, measure MeasureFunc) []string {
	if measure == nil {
		measure = runeCount
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, w := range words {
			if line == "" {
				line = w
				continue
			}
			if next := line + " " + w; measure(next) <= maxWidth {
				line = next
				continue
			}
			lines = append(lines, Truncate(line, maxWidth, measure))
			line = w
		}
		lines = append(lines, Truncate(line, maxWidth, measure))
	}

	if maxLines > 0 && len(lines) > maxLines {
		rest := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], forceEllipsis(rest, maxWidth, measure))
	}
	return lines
}

// forceEllipsis truncates text and marks it shortened even when it fits
func forceEllipsis(text string, maxWidth float64, measure MeasureFunc) string {
	text = strings.TrimSpace(text)
	if out := Truncate(text, maxWidth, measure); out != text {
		return out
	}
	runes := []rune(text)
	for n := len(runes); n > MinRunes; n-- {
		candidate := string(runes[:n]) + Ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return text
}
