package layout

import (
	"strings"
)

// Measurer is the text-measurement oracle. For a fixed face state it
// must be deterministic: the whole layout is replayed in tests against
// a fake implementation.
type Measurer interface {
	Width(text string, sizePx float64) float64
}

// Word is one positioned token. X/Y is the resting draw position
// (baseline-left); FinalX/FinalY duplicate it as the animation target.
// Effects displace transiently and never write back, so FinalX==X and
// FinalY==Y for the lifetime of the value.
type Word struct {
	Text   string
	X, Y   float64
	FinalX float64
	FinalY float64
}

// Result is the complete, immutable layout of one paragraph for a
// given surface size and alignment. Computed exactly once per
// paragraph at animation start and reused for every frame.
type Result struct {
	Words      []Word
	FontSize   float64
	LineHeight float64
}

const (
	maxFontSize = 100.0
	minFontSize = 8.0

	// lineHeightRatio is fixed for the monospaced family in use.
	lineHeightRatio = 1.2

	// margin is the total horizontal/vertical budget kept clear of the
	// surface edges; edgeInset is its per-side half.
	margin    = 20.0
	edgeInset = 10.0

	// justifyMaxStretch suppresses justified spacing when a near-empty
	// line would stretch gaps past this multiple of a natural space.
	justifyMaxStretch = 4.0
)

// OptimalFontSize searches font sizes by linear decrement from
// maxFontSize down to minFontSize and returns the first (largest) size
// whose wrapped text fits the vertical budget. When nothing fits it
// returns the floor: a cramped overflow beats a hard failure for a
// purely visual artifact.
func OptimalFontSize(m Measurer, text string, width, height float64) float64 {
	for size := maxFontSize; size >= minFontSize; size-- {
		lines := WrapText(m, text, size, width)
		totalHeight := float64(len(lines)) * size * lineHeightRatio
		if totalHeight < height-margin {
			return size
		}
	}
	return minFontSize
}

// WrapText greedily breaks text into lines bounded by the surface
// width minus the margin budget. A single word wider than the budget
// is kept whole on its own overflowing line.
func WrapText(m Measurer, text string, sizePx, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 4)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Width(candidate, sizePx) < width-margin {
			current = candidate
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

// Layout positions one paragraph on a width×height surface. The block
// is vertically centered; each line is placed per the alignment policy
// and split into Words in reading order.
func Layout(m Measurer, paragraph string, width, height float64, align string) *Result {
	fontSize := OptimalFontSize(m, paragraph, width, height)
	lineHeight := fontSize * lineHeightRatio
	lines := WrapText(m, paragraph, fontSize, width)

	res := &Result{
		FontSize:   fontSize,
		LineHeight: lineHeight,
	}

	startY := (height-float64(len(lines))*lineHeight)/2 + lineHeight/2
	for i, line := range lines {
		y := startY + float64(i)*lineHeight
		lastLine := i == len(lines)-1
		res.Words = append(res.Words, placeLine(m, line, y, width, fontSize, align, lastLine)...)
	}
	return res
}

// placeLine computes horizontal positions for the words of one line.
func placeLine(m Measurer, line string, y, width, fontSize float64, align string, lastLine bool) []Word {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	naturalSpace := m.Width(" ", fontSize)
	wordWidths := make([]float64, len(words))
	sumWidths := 0.0
	for i, w := range words {
		wordWidths[i] = m.Width(w, fontSize)
		sumWidths += wordWidths[i]
	}

	space := naturalSpace
	if align == "justify" && !lastLine && len(words) > 1 {
		// Justified gaps only when they are sane: positive and not
		// stretched beyond 4x a natural space on a near-empty line.
		available := width - margin - sumWidths
		perGap := available / float64(len(words)-1)
		if perGap > 0 && perGap < naturalSpace*justifyMaxStretch {
			space = perGap
		}
	}

	lineWidth := sumWidths + float64(len(words)-1)*space
	var x float64
	switch align {
	case "right":
		x = width - edgeInset - lineWidth
	case "center":
		x = (width - lineWidth) / 2
	default: // left and justify anchor at the left inset
		x = edgeInset
	}

	out := make([]Word, len(words))
	for i, w := range words {
		out[i] = Word{Text: w, X: x, Y: y, FinalX: x, FinalY: y}
		x += wordWidths[i] + space
	}
	return out
}
