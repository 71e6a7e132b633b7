package config

import "testing"

func TestNormalizeAlign(t *testing.T) {
	tests := []struct{ in, want string }{
		{"left", AlignLeft},
		{"right", AlignRight},
		{"center", AlignCenter},
		{"justify", AlignJustify},
		{"  Center ", AlignCenter},
		{"", AlignLeft},
		{"middle", AlignLeft},
	}
	for _, tt := range tests {
		if got := NormalizeAlign(tt.in); got != tt.want {
			t.Errorf("NormalizeAlign(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEffect(t *testing.T) {
	tests := []struct{ in, want string }{
		{"typewriter", EffectTypewriter},
		{"fade", EffectFade},
		{"fly-in", EffectFlyIn},
		{"flyin", EffectFlyIn},
		{"fly", EffectFlyIn},
		{"ZOOM", EffectZoom},
		{"", EffectTypewriter},
		{"sparkle", EffectTypewriter},
	}
	for _, tt := range tests {
		if got := NormalizeEffect(tt.in); got != tt.want {
			t.Errorf("NormalizeEffect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
