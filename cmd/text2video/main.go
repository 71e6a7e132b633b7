package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/engine"
	"github.com/ivlev/text2video/internal/script"
	"github.com/ivlev/text2video/internal/source"
	"github.com/ivlev/text2video/internal/surface"
	"github.com/ivlev/text2video/internal/system"
	"github.com/ivlev/text2video/internal/video"
)

func main() {
	// Raise system limits (macOS/Linux)
	system.InitResourceLimits()

	// Create the working directories if missing
	dirs := []string{"input/text", "output", "scripts"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	textPtr := flag.String("text", "", "Text to animate (overrides -input)")
	inputPtr := flag.String("input", "", "Path to a .txt file (default: newest file in input/text/)")
	outputPtr := flag.String("output", "", "Path to the video (empty: generated automatically in output/)")
	resolutionPtr := flag.Int("resolution", 720, "Square surface side in pixels")
	fpsPtr := flag.Int("fps", 30, "FPS")
	effectPtr := flag.String("effect", "typewriter", "Reveal effect: typewriter, fade, fly-in, zoom")
	alignPtr := flag.String("align", "left", "Text alignment: left, center, right, justify")
	playPtr := flag.Bool("play", false, "Play in real time instead of offline rendering")
	recordPtr := flag.Bool("record", true, "Capture frames to video (with -play; offline rendering always records)")
	transitionPtr := flag.String("transition", "none", "xfade transition between paragraphs: fade, wipeleft, slideup, dissolve, none")
	fadePtr := flag.Float64("fade", 0.5, "Transition duration (seconds)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel segment workers")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	qrPtr := flag.Bool("qr", false, "Append a QR outro card with the source text")
	scriptInPtr := flag.String("script-in", "", "Play a YAML script instead of raw text (\"latest\" picks the newest in scripts/)")
	scriptOutPtr := flag.String("script-out", "", "Write a YAML script from the input and exit")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	cfg := &config.Config{
		Resolution:   *resolutionPtr,
		FPS:          *fpsPtr,
		Effect:       config.NormalizeEffect(*effectPtr),
		Align:        config.NormalizeAlign(*alignPtr),
		Record:       *recordPtr,
		Transition:   *transitionPtr,
		FadeDuration: *fadePtr,
		Workers:      *workersPtr,
		QROutro:      *qrPtr,
		ScriptInput:  *scriptInPtr,
		ScriptOutput: *scriptOutPtr,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
	}
	if cfg.Resolution < 64 {
		cfg.Resolution = 64
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}

	var slides []engine.Slide
	nameSource := "text"

	if cfg.ScriptInput != "" {
		scriptPath := cfg.ScriptInput
		if scriptPath == "latest" {
			latest, err := script.FindLatest()
			if err != nil {
				log.Fatalf("[-] Error: %v", err)
			}
			scriptPath = latest
		}
		s, err := script.Read(scriptPath)
		if err != nil {
			log.Fatalf("[-] Error reading script: %v", err)
		}
		fmt.Printf("[*] Using script: %s\n", scriptPath)
		slides = engine.PlaylistFromScript(s)
		nameSource = scriptPath
	} else {
		text := *textPtr
		if text == "" {
			inputPath := *inputPtr
			if inputPath == "" {
				latest, err := system.FindLatestText("input/text")
				if err != nil {
					log.Fatalf("[-] Error: %v. Put a .txt file in input/text/ or pass -text", err)
				}
				inputPath = latest
				fmt.Printf("[*] Selected file: %s\n", inputPath)
			}
			src, err := source.FromFile(inputPath)
			if err != nil {
				log.Fatalf("[-] Error reading input: %v", err)
			}
			paragraphs := make([]string, 0, src.ParagraphCount())
			for i := 0; i < src.ParagraphCount(); i++ {
				paragraphs = append(paragraphs, src.Paragraph(i))
			}
			text = strings.Join(paragraphs, "\n\n")
			nameSource = inputPath
		}

		if cfg.ScriptOutput != "" {
			s := script.Generate(text, cfg.Effect, cfg.Align)
			outPath := cfg.ScriptOutput
			if outPath == "latest" || outPath == "auto" {
				outPath = script.GeneratePath()
			}
			os.MkdirAll(filepath.Dir(outPath), 0755)
			if err := script.Write(s, outPath); err != nil {
				log.Fatalf("[-] Error writing script: %v", err)
			}
			fmt.Printf("[+++] Success! Script saved: %s\n", outPath)
			return
		}

		slides = engine.PlaylistFromText(text, cfg.Effect, cfg.Align)
	}

	if len(slides) == 0 {
		log.Fatalf("[-] Error: input contains no paragraphs")
	}

	cfg.OutputVideo = *outputPtr
	if cfg.OutputVideo == "" {
		baseName := filepath.Base(nameSource)
		ext := filepath.Ext(baseName)
		nameOnly := strings.TrimSuffix(baseName, ext)
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23 // standard CRF for x264
		}
	}
	cfg.Quality = quality

	if *playPtr {
		runLive(cfg, slides)
		return
	}

	if !system.CheckFFmpeg() {
		log.Fatalf("[-] Error: ffmpeg not found in PATH; offline rendering needs it (use -play for a dry run)")
	}

	project := engine.NewProject(cfg, slides)
	if err := project.Run(); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
}

// runLive plays the slides paced by the wall clock, optionally
// mirroring frames into a recorder. Without ffmpeg the run degrades to
// play-only instead of failing.
func runLive(cfg *config.Config, slides []engine.Slide) {
	canvas, err := surface.NewCanvas(cfg.Resolution)
	if err != nil {
		log.Fatalf("[-] Surface error: %v", err)
	}
	defer canvas.Release()

	player := engine.NewPlayer(canvas, cfg.FPS, nil)
	player.OnParagraphStart = func(index int) {
		fmt.Printf("[>] Paragraph %d/%d\n", index+1, len(slides))
	}

	if cfg.Record {
		if system.CheckFFmpeg() {
			player.SinkFactory = func() (video.FrameSink, error) {
				return video.StartRecorder(cfg.OutputVideo, cfg.Resolution, cfg.Resolution, cfg.FPS, cfg.VideoEncoder, cfg.Quality)
			}
		} else {
			fmt.Println("[!] ffmpeg not found, playing without recording")
		}
	}

	done, started := player.Start(slides)
	if !started {
		log.Fatalf("[-] Error: nothing to play")
	}
	<-done

	if player.Completions() > 0 && cfg.Record && system.CheckFFmpeg() {
		fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
	}
}

var buildVersion = "dev"
