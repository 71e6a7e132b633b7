package effects

import (
	"testing"
	"time"

	"github.com/ivlev/text2video/internal/layout"
)

func testWords(n int) []layout.Word {
	words := make([]layout.Word, n)
	for i := range words {
		words[i] = layout.Word{
			Text: "w", X: float64(10 + i*50), Y: 100,
			FinalX: float64(10 + i*50), FinalY: 100,
		}
	}
	return words
}

func TestTotalDurations(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		words  int
		want   time.Duration
	}{
		{"typewriter", &Typewriter{}, 5, 5*120*time.Millisecond + 500*time.Millisecond},
		{"fade", &Fade{}, 2, 700 * time.Millisecond},
		{"fly-in", &FlyIn{SurfaceHeight: 200}, 3, 3*100*time.Millisecond + 400*time.Millisecond + 500*time.Millisecond},
		{"zoom", &Zoom{}, 3, 3*100*time.Millisecond + 300*time.Millisecond + 500*time.Millisecond},
		{"zero words typewriter", &Typewriter{}, 0, 500 * time.Millisecond},
		{"zero words zoom", &Zoom{}, 0, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.effect.TotalDuration(tt.words); got != tt.want {
				t.Errorf("TotalDuration(%d) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}

// TestTerminalState checks that every effect reaches its rest state at
// the reported total duration and stays there.
func TestTerminalState(t *testing.T) {
	const n = 4
	words := testWords(n)

	all := map[string]Effect{
		"typewriter": &Typewriter{},
		"fade":       &Fade{},
		"fly-in":     &FlyIn{SurfaceHeight: 500},
		"zoom":       &Zoom{},
	}

	for name, eff := range all {
		t.Run(name, func(t *testing.T) {
			total := eff.TotalDuration(n)
			for _, at := range []time.Duration{total, total + time.Second, total + time.Hour} {
				ops := eff.Render(words, at)
				if len(ops) != n {
					t.Fatalf("at %v: %d ops, want %d", at, len(ops), n)
				}
				for i, op := range ops {
					if op.Opacity != 1 {
						t.Errorf("at %v: word %d opacity %v, want 1", at, i, op.Opacity)
					}
					if op.Scale != 1 {
						t.Errorf("at %v: word %d scale %v, want 1", at, i, op.Scale)
					}
					if op.X != words[i].FinalX || op.Y != words[i].FinalY {
						t.Errorf("at %v: word %d at (%v,%v), want rest (%v,%v)",
							at, i, op.X, op.Y, words[i].FinalX, words[i].FinalY)
					}
				}
			}
		})
	}
}

// TestFadeExample pins the reference scenario: two words, both fully
// opaque at 250ms, total 700ms.
func TestFadeExample(t *testing.T) {
	words := testWords(2)
	eff := &Fade{}

	ops := eff.Render(words, 250*time.Millisecond)
	for i, op := range ops {
		if op.Opacity != 1.0 {
			t.Errorf("word %d opacity %v at 250ms, want 1.0", i, op.Opacity)
		}
	}
	if total := eff.TotalDuration(2); total != 700*time.Millisecond {
		t.Errorf("total %v, want 700ms", total)
	}
}

func TestFadeWindows(t *testing.T) {
	words := testWords(3)
	eff := &Fade{}

	tests := []struct {
		at   time.Duration
		want [3]float64
	}{
		{0, [3]float64{0, 0, 0}},
		{50 * time.Millisecond, [3]float64{0.5, 0, 0}},
		{150 * time.Millisecond, [3]float64{1, 0.5, 0}},
		{250 * time.Millisecond, [3]float64{1, 1, 0.5}},
		{400 * time.Millisecond, [3]float64{1, 1, 1}},
	}

	for _, tt := range tests {
		ops := eff.Render(words, tt.at)
		for i, op := range ops {
			if op.Opacity != tt.want[i] {
				t.Errorf("at %v: word %d opacity %v, want %v", tt.at, i, op.Opacity, tt.want[i])
			}
		}
	}
}

func TestTypewriterDiscreteReveal(t *testing.T) {
	words := testWords(4)
	eff := &Typewriter{}

	tests := []struct {
		at      time.Duration
		visible int
	}{
		{0, 1},
		{119 * time.Millisecond, 1},
		{120 * time.Millisecond, 2},
		{360 * time.Millisecond, 4},
		{10 * time.Second, 4},
	}

	for _, tt := range tests {
		ops := eff.Render(words, tt.at)
		if len(ops) != tt.visible {
			t.Errorf("at %v: %d words visible, want %d", tt.at, len(ops), tt.visible)
		}
		for _, op := range ops {
			if op.Opacity != 1 {
				t.Errorf("revealed word has opacity %v, want 1", op.Opacity)
			}
		}
	}
}

func TestFlyInStartsOffCanvas(t *testing.T) {
	words := testWords(3)
	eff := &FlyIn{SurfaceHeight: 500}

	ops := eff.Render(words, 0)
	// Word 0 begins its window at t=0; words 1 and 2 have not started
	// and must sit at the surface height.
	for i := 1; i < 3; i++ {
		if ops[i].Y != 500 {
			t.Errorf("word %d at y=%v before its window, want 500", i, ops[i].Y)
		}
	}

	// Mid-window the word is strictly between start and rest.
	ops = eff.Render(words, 200*time.Millisecond)
	if y := ops[0].Y; y <= words[0].FinalY || y >= 500 {
		t.Errorf("word 0 mid-flight y=%v, want between %v and 500", y, words[0].FinalY)
	}
	// Horizontal position never moves.
	for i, op := range ops {
		if op.X != words[i].FinalX {
			t.Errorf("word %d x=%v, want fixed %v", i, op.X, words[i].FinalX)
		}
	}
}

func TestZoomOvershoot(t *testing.T) {
	words := testWords(1)
	eff := &Zoom{}

	if ops := eff.Render(words, 0); ops[0].Scale != 0 {
		t.Errorf("scale %v at window start, want 0", ops[0].Scale)
	}

	// Back ease-out overshoots past 1 inside the window before settling.
	overshot := false
	for ms := 10; ms < 300; ms += 10 {
		ops := eff.Render(words, time.Duration(ms)*time.Millisecond)
		if ops[0].Scale > 1 {
			overshot = true
		}
		if ops[0].Scale < 0 {
			t.Fatalf("negative scale %v at %dms", ops[0].Scale, ms)
		}
	}
	if !overshot {
		t.Error("zoom never overshot scale 1 inside its window")
	}

	if ops := eff.Render(words, 300*time.Millisecond); ops[0].Scale != 1 {
		t.Errorf("scale %v at window end, want 1", ops[0].Scale)
	}
}

func TestNegativeElapsedClamps(t *testing.T) {
	words := testWords(2)

	all := []Effect{&Typewriter{}, &Fade{}, &FlyIn{SurfaceHeight: 300}, &Zoom{}}
	for _, eff := range all {
		ops := eff.Render(words, -time.Second)
		// Identical to the t=0 frame: no panic, no stray motion.
		base := eff.Render(words, 0)
		if len(ops) != len(base) {
			t.Errorf("%T: %d ops at -1s, %d at 0", eff, len(ops), len(base))
			continue
		}
		for i := range ops {
			if ops[i] != base[i] {
				t.Errorf("%T word %d: %+v at -1s, want %+v", eff, i, ops[i], base[i])
			}
		}
	}
}

func TestForNameFallback(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"fade", "*effects.Fade"},
		{"fly-in", "*effects.FlyIn"},
		{"zoom", "*effects.Zoom"},
		{"typewriter", "*effects.Typewriter"},
		{"", "*effects.Typewriter"},
		{"sparkle", "*effects.Typewriter"},
	}

	for _, tt := range tests {
		eff := ForName(tt.name, 200)
		if got := typeName(eff); got != tt.want {
			t.Errorf("ForName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *Typewriter:
		return "*effects.Typewriter"
	case *Fade:
		return "*effects.Fade"
	case *FlyIn:
		return "*effects.FlyIn"
	case *Zoom:
		return "*effects.Zoom"
	default:
		return "unknown"
	}
}
