package engine

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/effects"
	"github.com/ivlev/text2video/internal/layout"
	"github.com/ivlev/text2video/internal/surface"
	"github.com/ivlev/text2video/internal/system"
	"github.com/ivlev/text2video/internal/video"
)

// Project renders a playlist straight to a video file without pacing
// frames in real time: every paragraph becomes its own segment, driven
// by a stepped clock (one frame per 1/FPS), segments render in
// parallel and are concatenated at the end. Output is deterministic
// for fixed inputs.
type Project struct {
	Config  *config.Config
	Slides  []Slide
	tempDir string
}

// NewProject creates an offline render project.
func NewProject(cfg *config.Config, slides []Slide) *Project {
	return &Project{Config: cfg, Slides: slides}
}

// Run renders all segments and assembles the final video.
func (p *Project) Run() error {
	startTime := time.Now()
	var renderEnd, concatStart time.Time

	if len(p.Slides) == 0 {
		return fmt.Errorf("input contains no paragraphs")
	}

	var err error
	p.tempDir, err = os.MkdirTemp("", "text2video_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	workers := system.RecommendedWorkers(p.Config.Workers)
	if workers > len(p.Slides) {
		workers = len(p.Slides)
	}

	fmt.Println("--- [PROJECT: TEXT ANIMATION] ---")
	fmt.Printf("[*] Paragraphs: %d | Effect: %s | Align: %s\n", len(p.Slides), p.Config.Effect, p.Config.Align)
	fmt.Printf("[*] Surface: %dx%d @ %d FPS | Workers: %d\n", p.Config.Resolution, p.Config.Resolution, p.Config.FPS, workers)
	fmt.Println("---------------------------------")

	results := make([]string, len(p.Slides))
	durations := make([]float64, len(p.Slides))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, slide := range p.Slides {
		i, slide := i, slide
		g.Go(func() error {
			segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%d.mp4", i))
			dur, err := p.renderSegment(slide, segPath)
			if err != nil {
				return fmt.Errorf("segment %d: %w", i, err)
			}
			results[i] = segPath
			durations[i] = dur
			fmt.Printf("[>] Ready: %d/%d\n", i+1, len(p.Slides))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	renderEnd = time.Now()

	if p.Config.QROutro {
		segPath := filepath.Join(p.tempDir, "outro.mp4")
		dur, err := p.renderQROutro(segPath)
		if err != nil {
			// The outro is a garnish; a broken QR must not kill the render.
			log.Printf("[!] QR outro skipped: %v", err)
		} else {
			results = append(results, segPath)
			durations = append(durations, dur)
		}
	}

	fmt.Println("[*] Assembling final video...")
	concatStart = time.Now()
	if err := video.Concatenate(results, p.Config.OutputVideo, p.tempDir, *p.Config, durations); err != nil {
		return fmt.Errorf("assembling final video: %w", err)
	}

	if p.Config.ShowStats {
		p.reportStats(startTime, renderEnd, concatStart)
	}

	return nil
}

// renderSegment produces one paragraph's animation as an isolated
// video segment and returns its duration in seconds.
func (p *Project) renderSegment(slide Slide, segPath string) (float64, error) {
	side := p.Config.Resolution
	canvas, err := surface.NewCanvas(side)
	if err != nil {
		return 0, err
	}
	defer canvas.Release()

	res := layout.Layout(canvas, slide.Text, float64(side), float64(side), slide.Align)
	eff := effects.ForName(slide.Effect, float64(side))
	total := eff.TotalDuration(len(res.Words))

	fps := p.Config.FPS
	frames := int(math.Ceil(total.Seconds() * float64(fps)))
	if frames < 1 {
		frames = 1
	}

	rec, err := video.StartRecorder(segPath, side, side, fps, p.Config.VideoEncoder, p.Config.Quality)
	if err != nil {
		return 0, err
	}

	for f := 0; f < frames; f++ {
		elapsed := time.Duration(f) * time.Second / time.Duration(fps)
		canvas.Clear()
		canvas.SetFontSize(res.FontSize)
		for _, op := range eff.Render(res.Words, elapsed) {
			canvas.DrawText(op.Text, op.X, op.Y, op.Opacity, op.Scale)
		}
		if err := rec.WriteFrame(canvas.Image()); err != nil {
			rec.Close()
			return 0, err
		}
	}

	if err := rec.Close(); err != nil {
		return 0, err
	}
	return float64(frames) / float64(fps), nil
}

func (p *Project) reportStats(startTime, renderEnd, concatStart time.Time) {
	totalTime := time.Since(startTime)
	renderTime := renderEnd.Sub(startTime)
	concatTime := time.Since(concatStart)

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), concatTime.Seconds(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Paragraphs: %d | Total: %.2fs | Render: %.2fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		len(p.Slides),
		totalTime.Seconds(),
		renderTime.Seconds(),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		log.Printf("[!] Could not write benchmark.log: %v", err)
	}
}
