package fonts

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Provider hands out Go Mono faces keyed by pixel size. Faces are
// cached because opentype.NewFace is too expensive to call per frame,
// and the zoom effect asks for many fractional sizes.
type Provider struct {
	parsed *opentype.Font
	mu     sync.RWMutex
	faces  map[int64]font.Face
}

var (
	defaultOnce sync.Once
	defaultProv *Provider
	defaultErr  error
)

// Default returns the process-wide Go Mono provider.
func Default() (*Provider, error) {
	defaultOnce.Do(func() {
		defaultProv, defaultErr = NewProvider()
	})
	return defaultProv, defaultErr
}

// NewProvider parses the embedded Go Mono TTF.
func NewProvider() (*Provider, error) {
	parsed, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing Go Mono: %w", err)
	}
	return &Provider{
		parsed: parsed,
		faces:  make(map[int64]font.Face),
	}, nil
}

// quantize buckets sizes to quarter-pixel steps so scale animations do
// not flood the cache with near-identical faces.
func quantize(sizePx float64) int64 {
	return int64(math.Round(sizePx * 4))
}

// Face returns a cached face for the given pixel size. Sizes below one
// pixel are clamped; a zero-scale zoom frame must not panic the
// rasterizer.
func (p *Provider) Face(sizePx float64) font.Face {
	if sizePx < 1 {
		sizePx = 1
	}
	key := quantize(sizePx)

	p.mu.RLock()
	face, ok := p.faces[key]
	p.mu.RUnlock()
	if ok {
		return face
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Double check
	if face, ok = p.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(p.parsed, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Go Mono parsed once at startup; face creation over a valid
		// font only fails on absurd options, so fall back hard.
		panic(fmt.Sprintf("fonts: face %gpx: %v", sizePx, err))
	}
	p.faces[key] = face
	return face
}

// Width measures the rendered advance of text at the given size.
func (p *Provider) Width(text string, sizePx float64) float64 {
	face := p.Face(sizePx)
	return float64(font.MeasureString(face, text)) / 64
}

// Ascent returns the ascent of the face at the given size, in pixels.
func (p *Provider) Ascent(sizePx float64) float64 {
	return float64(p.Face(sizePx).Metrics().Ascent) / 64
}
