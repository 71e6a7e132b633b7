package video

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/text2video/internal/config"
)

// FrameSink receives finished frames from the animation loop. The live
// recorder implements it; tests substitute counters.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Recorder streams raw RGBA frames into a single ffmpeg process over
// stdin and finalizes one H.264 file on Close. One recorder serves one
// playback (or one paragraph segment in the offline pipeline); the
// engine calls Close exactly once, on completion or cancellation.
type Recorder struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	logBuf  bytes.Buffer
	outPath string
	closed  bool
}

// StartRecorder launches ffmpeg for a width×height stream at the given
// FPS. Duration is open-ended: the stream ends when Close closes stdin.
func StartRecorder(outPath string, width, height, fps int, encoderName string, quality int) (*Recorder, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-r", fmt.Sprintf("%d", fps),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, qualityArgs(encoderName, quality)...)
	args = append(args, outPath)

	cmd := exec.Command("ffmpeg", args...)
	r := &Recorder{cmd: cmd, outPath: outPath}
	cmd.Stdout = &r.logBuf
	cmd.Stderr = &r.logBuf

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	r.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return r, nil
}

// WriteFrame pushes one raw RGBA frame down the pipe.
func (r *Recorder) WriteFrame(img *image.RGBA) error {
	if err := writeRawRGBA(r.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

// Close ends the stream and waits for ffmpeg to finalize the file.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.stdin.Close()
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, r.logBuf.String())
	}
	return nil
}

// Path returns the artifact location once Close has succeeded.
func (r *Recorder) Path() string { return r.outPath }

// writeRawRGBA dumps the pixel data of img, converting only when the
// layout is not already tightly packed RGBA.
func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// qualityArgs picks per-encoder rate-control flags.
func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox does not take -q:v reliably across versions; use bitrate.
		bitrate := quality * 100 // kbit/s, 75 -> 7.5Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// Concatenate merges paragraph segments into the final video, with an
// optional xfade transition between consecutive segments.
func Concatenate(segmentPaths []string, finalPath string, tmpDir string, cfg config.Config, segmentDurations []float64) error {
	useXfade := cfg.Transition != "" && cfg.Transition != "none" && len(segmentPaths) > 1

	if !useXfade {
		concatFilePath := filepath.Join(tmpDir, "inputs.txt")
		f, err := os.Create(concatFilePath)
		if err != nil {
			return err
		}
		for _, p := range segmentPaths {
			absPath, _ := filepath.Abs(p)
			fmt.Fprintf(f, "file '%s'\n", absPath)
		}
		f.Close()

		cmd := exec.Command("ffmpeg", "-y",
			"-f", "concat", "-safe", "0", "-i", concatFilePath,
			"-c", "copy", finalPath,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
		}
		return nil
	}

	fadeDuration := cfg.FadeDuration
	if fadeDuration <= 0 {
		fadeDuration = 0.5
	}

	args := []string{"-y"}
	for _, p := range segmentPaths {
		args = append(args, "-i", p)
	}

	filterGraph := ""
	lastOut := "[0:v]"
	currentOffset := 0.0

	for i := 1; i < len(segmentPaths); i++ {
		currentOffset += segmentDurations[i-1] - fadeDuration

		nextIn := fmt.Sprintf("[%d:v]", i)
		outName := fmt.Sprintf("[v%d]", i)
		filterGraph += fmt.Sprintf("%s%sxfade=transition=%s:duration=%f:offset=%f%s;",
			lastOut, nextIn, cfg.Transition, fadeDuration, currentOffset, outName)
		lastOut = outName
	}

	filterGraph = strings.TrimSuffix(filterGraph, ";")
	args = append(args, "-filter_complex", filterGraph, "-map", lastOut)
	args = append(args, "-c:v", cfg.VideoEncoder, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(cfg.VideoEncoder, cfg.Quality)...)
	args = append(args, finalPath)

	cmd := exec.Command("ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg xfade error: %v, output: %s", err, string(out))
	}
	return nil
}
