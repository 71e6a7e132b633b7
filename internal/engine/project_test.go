package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/system"
)

func TestProjectRejectsEmptyPlaylist(t *testing.T) {
	cfg := &config.Config{Resolution: 64, FPS: 30}
	project := NewProject(cfg, nil)
	if err := project.Run(); err == nil {
		t.Fatal("expected an error for an empty playlist")
	}
}

func TestRenderSegment(t *testing.T) {
	if !system.CheckFFmpeg() {
		t.Skip("ffmpeg not found in PATH")
	}

	cfg := &config.Config{
		Resolution:   64,
		FPS:          10,
		Effect:       config.EffectFade,
		Align:        config.AlignLeft,
		VideoEncoder: "libx264",
		Quality:      30,
	}
	project := NewProject(cfg, nil)

	segPath := filepath.Join(t.TempDir(), "seg.mp4")
	slide := Slide{Text: "hello world", Effect: "fade", Align: "left"}
	dur, err := project.renderSegment(slide, segPath)
	if err != nil {
		t.Fatalf("renderSegment: %v", err)
	}

	// Two words, fade: 700ms of animation at 10 FPS.
	if dur < 0.69 || dur > 0.71 {
		t.Errorf("segment duration %.3fs, want ~0.7s", dur)
	}
	info, err := os.Stat(segPath)
	if err != nil {
		t.Fatalf("segment file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("segment file is empty")
	}
}
