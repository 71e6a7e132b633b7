package engine

import (
	"image"
	"image/draw"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/text2video/internal/surface"
	"github.com/ivlev/text2video/internal/video"
)

// outroHoldSeconds is how long the closing QR card stays on screen.
const outroHoldSeconds = 2

// renderQROutro appends a closing card: a QR code of the full source
// text, centered, with a small caption underneath. Scanning it
// recovers the animated text.
func (p *Project) renderQROutro(segPath string) (float64, error) {
	side := p.Config.Resolution

	var sb strings.Builder
	for i, slide := range p.Slides {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(slide.Text)
	}

	// QR payloads cap out around 2.9KB at this error-correction level;
	// long inputs get truncated rather than failing the outro.
	payload := sb.String()
	if len(payload) > 2000 {
		payload = payload[:2000]
	}

	qrSide := side / 2
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return 0, err
	}
	qrImg := qr.Image(qrSide)

	canvas, err := surface.NewCanvas(side)
	if err != nil {
		return 0, err
	}
	defer canvas.Release()

	canvas.Clear()
	origin := image.Pt((side-qrSide)/2, (side-qrSide)/2)
	draw.Draw(canvas.Image(), image.Rectangle{Min: origin, Max: origin.Add(image.Pt(qrSide, qrSide))},
		qrImg, qrImg.Bounds().Min, draw.Over)

	caption := "scan for the full text"
	captionSize := float64(side) / 40
	canvas.SetFontSize(captionSize)
	captionW := canvas.Width(caption, captionSize)
	canvas.DrawText(caption, (float64(side)-captionW)/2, float64(origin.Y+qrSide)+captionSize*2, 1, 1)

	fps := p.Config.FPS
	frames := outroHoldSeconds * fps

	rec, err := video.StartRecorder(segPath, side, side, fps, p.Config.VideoEncoder, p.Config.Quality)
	if err != nil {
		return 0, err
	}
	for f := 0; f < frames; f++ {
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
