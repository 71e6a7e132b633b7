package surface

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/text2video/internal/fonts"
	"github.com/ivlev/text2video/internal/system"
)

// Canvas is the drawable surface: a square RGBA frame plus the Go Mono
// face state used to measure and paint words. It doubles as the
// layout measurement oracle, which keeps layout and rasterization
// pinned to the same metrics. The engine owns it exclusively for the
// duration of one frame; the recorder only reads the finished frame.
type Canvas struct {
	img      *image.RGBA
	side     int
	provider *fonts.Provider
	fontSize float64

	bg color.RGBA
	fg color.RGBA
}

// NewCanvas allocates a side×side canvas from the shared frame pool.
func NewCanvas(side int) (*Canvas, error) {
	provider, err := fonts.Default()
	if err != nil {
		return nil, err
	}
	c := &Canvas{
		img:      system.GetImage(image.Rect(0, 0, side, side)),
		side:     side,
		provider: provider,
		bg:       color.RGBA{R: 16, G: 16, B: 20, A: 255},
		fg:       color.RGBA{R: 235, G: 235, B: 235, A: 255},
	}
	c.Clear()
	return c, nil
}

// Release returns the frame buffer to the pool. The canvas must not be
// used afterwards.
func (c *Canvas) Release() {
	system.PutImage(c.img)
	c.img = nil
}

// Size returns the square side in pixels.
func (c *Canvas) Size() (int, int) { return c.side, c.side }

// Image exposes the current frame for encoding. Read-only for callers.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetFontSize fixes the resting font size for subsequent draws.
func (c *Canvas) SetFontSize(px float64) { c.fontSize = px }

// Clear repaints the background; called once per frame before the
// visible words are redrawn.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: c.bg}, image.Point{}, draw.Src)
}

// Width implements layout.Measurer.
func (c *Canvas) Width(text string, sizePx float64) float64 {
	return c.provider.Width(text, sizePx)
}

// DrawText paints one word at baseline-left (x, y). Opacity scales the
// foreground alpha; scale draws the word with a proportionally sized
// face about the word's own center, preserving its resting midpoint.
func (c *Canvas) DrawText(text string, x, y float64, opacity, scale float64) {
	if opacity <= 0 || scale <= 0 || text == "" {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	size := c.fontSize
	drawX, drawY := x, y
	if scale != 1 {
		// Re-center the scaled glyph run: same horizontal midpoint,
		// vertical midpoint approximated at half the ascent above the
		// baseline.
		naturalW := c.provider.Width(text, size)
		naturalAscent := c.provider.Ascent(size)
		size = c.fontSize * scale
		scaledW := c.provider.Width(text, size)
		scaledAscent := c.provider.Ascent(size)
		drawX = x + (naturalW-scaledW)/2
		drawY = y - (naturalAscent-scaledAscent)/2
	}

	src := image.NewUniform(color.NRGBA{
		R: c.fg.R, G: c.fg.G, B: c.fg.B,
		A: uint8(opacity*255 + 0.5),
	})
	d := &font.Drawer{
		Dst:  c.img,
		Src:  src,
		Face: c.provider.Face(size),
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(drawX * 64),
			Y: fixed.Int26_6(drawY * 64),
		},
	}
	d.DrawString(text)
}
