package surface

import (
	"image/color"
	"testing"
)

func newTestCanvas(t *testing.T, side int) *Canvas {
	t.Helper()
	c, err := NewCanvas(side)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	t.Cleanup(c.Release)
	return c
}

// countForeground counts pixels that differ from the background.
func countForeground(c *Canvas) int {
	img := c.Image()
	bounds := img.Bounds()
	bg := color.RGBA{R: 16, G: 16, B: 20, A: 255}
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestClearResetsFrame(t *testing.T) {
	c := newTestCanvas(t, 120)
	c.SetFontSize(24)
	c.DrawText("ink", 10, 60, 1, 1)
	if countForeground(c) == 0 {
		t.Fatal("draw left no visible pixels")
	}

	c.Clear()
	if n := countForeground(c); n != 0 {
		t.Errorf("%d stray pixels survived Clear", n)
	}
}

func TestDrawTextSkipsInvisible(t *testing.T) {
	c := newTestCanvas(t, 120)
	c.SetFontSize(24)

	c.DrawText("ghost", 10, 60, 0, 1)
	c.DrawText("dot", 10, 60, 1, 0)
	c.DrawText("", 10, 60, 1, 1)
	if n := countForeground(c); n != 0 {
		t.Errorf("invisible draws painted %d pixels", n)
	}
}

func TestDrawTextOpacity(t *testing.T) {
	c := newTestCanvas(t, 120)
	c.SetFontSize(30)

	c.DrawText("O", 40, 70, 0.5, 1)
	if countForeground(c) == 0 {
		t.Fatal("half-opacity draw left no pixels")
	}

	// No pixel may reach the fully opaque foreground value.
	img := c.Image()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.RGBAAt(x, y)
			if px.R == 235 && px.G == 235 && px.B == 235 {
				t.Fatalf("pixel (%d,%d) is fully opaque under opacity 0.5", x, y)
			}
		}
	}
}

func TestDrawTextScaledStaysCentered(t *testing.T) {
	c := newTestCanvas(t, 200)
	c.SetFontSize(40)

	// The scaled-down word must cover fewer pixels than the full one.
	c.DrawText("mid", 60, 100, 1, 1)
	full := countForeground(c)

	c.Clear()
	c.DrawText("mid", 60, 100, 1, 0.5)
	half := countForeground(c)

	if half == 0 {
		t.Fatal("scaled draw left no pixels")
	}
	if half >= full {
		t.Errorf("scale 0.5 covered %d pixels, full size %d", half, full)
	}
}

func TestWidthMonotonicInSize(t *testing.T) {
	c := newTestCanvas(t, 64)

	small := c.Width("abc", 12)
	large := c.Width("abc", 48)
	if small <= 0 {
		t.Fatalf("width %v, want > 0", small)
	}
	if large <= small {
		t.Errorf("width at 48px (%v) not larger than at 12px (%v)", large, small)
	}

	// Go Mono is monospaced: equal rune counts measure equal.
	if a, b := c.Width("iii", 24), c.Width("WWW", 24); a != b {
		t.Errorf("monospace widths differ: %v vs %v", a, b)
	}
}
