package config

import "strings"

// Config carries every knob of a playback or render run. Populated by
// cmd flags; the engine treats it as read-only.
type Config struct {
	InputPath    string
	Text         string
	OutputVideo  string
	Resolution   int // square surface side in pixels
	FPS          int
	Effect       string
	Align        string
	Record       bool
	Transition   string // xfade transition between paragraph segments ("" or "none" disables)
	FadeDuration float64
	Workers      int
	VideoEncoder string
	Quality      int
	QROutro      bool
	ScriptInput  string
	ScriptOutput string
	ShowStats    bool
	BuildVersion string
}

// SegmentParams describes one paragraph segment handed to the video layer.
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64 // seconds
	ParagraphIdx  int
}

// Alignments and effects accepted by the engine. Anything else falls
// back to the defaults below instead of failing.
const (
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignCenter  = "center"
	AlignJustify = "justify"

	EffectTypewriter = "typewriter"
	EffectFade       = "fade"
	EffectFlyIn      = "fly-in"
	EffectZoom       = "zoom"
)

// NormalizeAlign maps user input to a known alignment, defaulting to left.
func NormalizeAlign(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case AlignRight:
		return AlignRight
	case AlignCenter:
		return AlignCenter
	case AlignJustify:
		return AlignJustify
	default:
		return AlignLeft
	}
}

// NormalizeEffect maps user input to a known effect, defaulting to typewriter.
func NormalizeEffect(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case EffectFade:
		return EffectFade
	case EffectFlyIn, "flyin", "fly":
		return EffectFlyIn
	case EffectZoom:
		return EffectZoom
	default:
		return EffectTypewriter
	}
}
