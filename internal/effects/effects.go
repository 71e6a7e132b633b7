package effects

import (
	"time"

	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/layout"
)

// DrawOp is one word to paint this frame. Opacity is in [0,1]; Scale
// is a uniform factor about the word's own center (1 = resting size).
type DrawOp struct {
	Text    string
	X, Y    float64
	Opacity float64
	Scale   float64
}

// Effect maps (positioned words, elapsed time) to a draw list. Render
// is a pure function of its arguments: it borrows the words read-only
// and never retains them between frames. TotalDuration tells the
// scheduler when the paragraph has settled, trailing pause included.
type Effect interface {
	Render(words []layout.Word, elapsed time.Duration) []DrawOp
	TotalDuration(wordCount int) time.Duration
}

// Per-effect timing constants. Every total carries a 500ms trailing
// pause after the last word settles so the cut to the next paragraph
// does not feel clipped.
const (
	tailPause = 500 * time.Millisecond

	typewriterStep = 120 * time.Millisecond

	staggerStep = 100 * time.Millisecond

	fadeWindow  = 100 * time.Millisecond
	flyInWindow = 400 * time.Millisecond
	zoomWindow  = 300 * time.Millisecond
)

// TailPause is the fixed hold the scheduler also applies after the
// whole playback, before signaling completion.
const TailPause = tailPause

// ForName selects an effect by configuration name. Unknown names fall
// back to the typewriter, mirroring the host UI's default control
// state; selection happens once at start, never inside the frame loop.
func ForName(name string, surfaceHeight float64) Effect {
	switch config.NormalizeEffect(name) {
	case config.EffectFade:
		return &Fade{}
	case config.EffectFlyIn:
		return &FlyIn{SurfaceHeight: surfaceHeight}
	case config.EffectZoom:
		return &Zoom{}
	default:
		return &Typewriter{}
	}
}

// windowT computes clamped progress of word i against a staggered
// window. Negative elapsed (a scheduler clock hiccup) clamps to the
// initial state rather than surfacing an error.
func windowT(elapsed time.Duration, index int, stagger, window time.Duration) float64 {
	start := time.Duration(index) * stagger
	if window <= 0 {
		window = time.Millisecond
	}
	return clamp01(float64(elapsed-start) / float64(window))
}

// Typewriter reveals whole words discretely, one every 120ms. Revealed
// words are fully opaque; nothing is drawn before a word's turn.
type Typewriter struct{}

func (e *Typewriter) Render(words []layout.Word, elapsed time.Duration) []DrawOp {
	if elapsed < 0 {
		elapsed = 0
	}
	visible := int(elapsed/typewriterStep) + 1
	if visible > len(words) {
		visible = len(words)
	}
	ops := make([]DrawOp, 0, visible)
	for _, w := range words[:visible] {
		ops = append(ops, DrawOp{Text: w.Text, X: w.X, Y: w.Y, Opacity: 1, Scale: 1})
	}
	return ops
}

func (e *Typewriter) TotalDuration(wordCount int) time.Duration {
	return clampDuration(time.Duration(wordCount)*typewriterStep + tailPause)
}

// Fade raises each word's opacity over a 100ms window starting at
// index*100ms.
type Fade struct{}

func (e *Fade) Render(words []layout.Word, elapsed time.Duration) []DrawOp {
	ops := make([]DrawOp, 0, len(words))
	for i, w := range words {
		t := windowT(elapsed, i, staggerStep, fadeWindow)
		ops = append(ops, DrawOp{Text: w.Text, X: w.X, Y: w.Y, Opacity: t, Scale: 1})
	}
	return ops
}

func (e *Fade) TotalDuration(wordCount int) time.Duration {
	return clampDuration(time.Duration(wordCount)*staggerStep + tailPause)
}

// FlyIn slides each word up from below the surface to its resting
// position with a cubic ease-out; the horizontal position stays fixed
// at FinalX. Words whose window has not started sit at the surface
// height, off canvas.
type FlyIn struct {
	SurfaceHeight float64
}

func (e *FlyIn) Render(words []layout.Word, elapsed time.Duration) []DrawOp {
	ops := make([]DrawOp, 0, len(words))
	for i, w := range words {
		t := easeOutCubic(windowT(elapsed, i, staggerStep, flyInWindow))
		y := lerp(e.SurfaceHeight, w.FinalY, t)
		ops = append(ops, DrawOp{Text: w.Text, X: w.FinalX, Y: y, Opacity: 1, Scale: 1})
	}
	return ops
}

func (e *FlyIn) TotalDuration(wordCount int) time.Duration {
	return clampDuration(time.Duration(wordCount)*staggerStep + flyInWindow + tailPause)
}

// Zoom grows each word about its own center from scale 0 toward 1,
// overshooting slightly before settling (back ease-out).
type Zoom struct{}

func (e *Zoom) Render(words []layout.Word, elapsed time.Duration) []DrawOp {
	ops := make([]DrawOp, 0, len(words))
	for i, w := range words {
		t := windowT(elapsed, i, staggerStep, zoomWindow)
		scale := easeOutBack(t)
		if scale < 0 {
			scale = 0
		}
		ops = append(ops, DrawOp{Text: w.Text, X: w.X, Y: w.Y, Opacity: 1, Scale: scale})
	}
	return ops
}

func (e *Zoom) TotalDuration(wordCount int) time.Duration {
	return clampDuration(time.Duration(wordCount)*staggerStep + zoomWindow + tailPause)
}

// clampDuration keeps renderer-reported durations non-negative so a
// degenerate word count can never wedge the scheduler.
func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
