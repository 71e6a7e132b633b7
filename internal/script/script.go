package script

import "github.com/ivlev/text2video/internal/source"

// Script represents a complete playback script for a video: the
// paragraph sequence with optional per-slide effect/alignment
// overrides. Scripts are written once from raw text, hand-edited, and
// played back with -script-in.
type Script struct {
	Version string  `yaml:"version"`
	Effect  string  `yaml:"effect"` // default effect for slides without an override
	Align   string  `yaml:"align"`  // default alignment
	Slides  []Slide `yaml:"slides"`
}

// Slide is one paragraph with its animation overrides.
type Slide struct {
	ID     int    `yaml:"id"`
	Text   string `yaml:"text"`
	Effect string `yaml:"effect,omitempty"`
	Align  string `yaml:"align,omitempty"`
}

// Generate builds a script from raw text: one slide per paragraph,
// defaults taken from the run configuration.
func Generate(text, effect, align string) *Script {
	paragraphs := source.Split(text)
	slides := make([]Slide, 0, len(paragraphs))
	for i, p := range paragraphs {
		slides = append(slides, Slide{ID: i + 1, Text: p})
	}
	return &Script{
		Version: "1.0",
		Effect:  effect,
		Align:   align,
		Slides:  slides,
	}
}

// SlideEffect resolves the effective effect name for slide i.
func (s *Script) SlideEffect(i int) string {
	if i < len(s.Slides) && s.Slides[i].Effect != "" {
		return s.Slides[i].Effect
	}
	return s.Effect
}

// SlideAlign resolves the effective alignment for slide i.
func (s *Script) SlideAlign(i int) string {
	if i < len(s.Slides) && s.Slides[i].Align != "" {
		return s.Slides[i].Align
	}
	return s.Align
}
