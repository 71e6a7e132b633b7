package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivlev/text2video/internal/effects"
	"github.com/ivlev/text2video/internal/layout"
	"github.com/ivlev/text2video/internal/script"
	"github.com/ivlev/text2video/internal/source"
	"github.com/ivlev/text2video/internal/surface"
	"github.com/ivlev/text2video/internal/video"
)

// Slide is one paragraph queued for playback with its resolved effect
// and alignment.
type Slide struct {
	Text   string
	Effect string
	Align  string
}

// PlaylistFromText splits raw text into paragraphs, all sharing the
// run's default effect and alignment. Empty text yields an empty
// playlist, which makes the start request a no-op.
func PlaylistFromText(text, effect, align string) []Slide {
	paragraphs := source.Split(text)
	slides := make([]Slide, 0, len(paragraphs))
	for _, p := range paragraphs {
		slides = append(slides, Slide{Text: p, Effect: effect, Align: align})
	}
	return slides
}

// PlaylistFromScript resolves per-slide overrides against the script
// defaults.
func PlaylistFromScript(s *script.Script) []Slide {
	slides := make([]Slide, 0, len(s.Slides))
	for i, sl := range s.Slides {
		if sl.Text == "" {
			continue
		}
		slides = append(slides, Slide{
			Text:   sl.Text,
			Effect: s.SlideEffect(i),
			Align:  s.SlideAlign(i),
		})
	}
	return slides
}

// Player drives one playback at a time: paragraphs in order, each laid
// out exactly once, frames produced by a single goroutine at a fixed
// rate. All per-run state lives in a run context created on Start and
// torn down on completion or cancellation.
type Player struct {
	canvas *surface.Canvas
	clock  Clock
	fps    int

	// SinkFactory, when set, is invoked before the first frame of a
	// run to open the recording sink. A factory error degrades the run
	// to play-only; it never aborts playback.
	SinkFactory func() (video.FrameSink, error)

	// OnParagraphStart, when set, is called from the playback
	// goroutine as each paragraph begins.
	OnParagraphStart func(index int)

	mu      sync.Mutex
	current *run

	completions atomic.Int64
}

type run struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func (r *run) cancel() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// NewPlayer creates a player over the given canvas. A nil clock means
// the system clock.
func NewPlayer(canvas *surface.Canvas, fps int, clock Clock) *Player {
	if clock == nil {
		clock = SystemClock{}
	}
	if fps <= 0 {
		fps = 30
	}
	return &Player{canvas: canvas, clock: clock, fps: fps}
}

// Running reports whether a playback is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// Completions returns how many playbacks have run to natural
// completion (cancelled runs are not counted).
func (p *Player) Completions() int64 {
	return p.completions.Load()
}

// Start begins playing the slides. A start request while a playback is
// active, or with an empty playlist, is a silent no-op: the returned
// channel is nil and started is false. Otherwise the channel closes
// when the run ends, naturally or by Stop.
func (p *Player) Start(slides []Slide) (done <-chan struct{}, started bool) {
	if len(slides) == 0 {
		return nil, false
	}

	p.mu.Lock()
	if p.current != nil {
		p.mu.Unlock()
		return nil, false
	}
	r := &run{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.current = r
	p.mu.Unlock()

	var sink video.FrameSink
	if p.SinkFactory != nil {
		var err error
		sink, err = p.SinkFactory()
		if err != nil {
			// Recording unsupported on this host: play without it.
			log.Printf("[!] Recording unavailable, continuing play-only: %v", err)
			sink = nil
		}
	}

	go p.play(r, slides, sink)
	return r.done, true
}

// Stop cancels the active playback, if any, and blocks until the
// playback goroutine has exited. After Stop no further frame is
// produced and the recording sink has been closed.
func (p *Player) Stop() {
	p.mu.Lock()
	r := p.current
	p.mu.Unlock()
	if r == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (p *Player) play(r *run, slides []Slide, sink video.FrameSink) {
	completed := false
	defer func() {
		// The sink is stopped exactly once, on natural completion or
		// on cancellation, before the player returns to idle.
		if sink != nil {
			if err := sink.Close(); err != nil {
				log.Printf("[!] Recorder close: %v", err)
			}
		}
		if completed {
			p.completions.Add(1)
		}
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
		close(r.done)
	}()

	w, h := p.canvas.Size()
	frameInterval := time.Second / time.Duration(p.fps)

	for i, slide := range slides {
		select {
		case <-r.stop:
			return
		default:
		}

		// One layout per paragraph; every frame reuses it.
		res := layout.Layout(p.canvas, slide.Text, float64(w), float64(h), slide.Align)
		eff := effects.ForName(slide.Effect, float64(h))
		total := eff.TotalDuration(len(res.Words))

		if p.OnParagraphStart != nil {
			p.OnParagraphStart(i)
		}

		paragraphStart := p.clock.Now()
		ticker := time.NewTicker(frameInterval)
		for {
			select {
			case <-r.stop:
				ticker.Stop()
				return
			case <-ticker.C:
			}

			elapsed := p.clock.Now().Sub(paragraphStart)
			sink = p.drawFrame(res, eff, elapsed, sink)
			if elapsed >= total {
				break
			}
		}
		ticker.Stop()
	}

	// Fixed hold after the last paragraph settles, then completion.
	tail := time.NewTimer(effects.TailPause)
	select {
	case <-r.stop:
		tail.Stop()
		return
	case <-tail.C:
	}
	completed = true
}

// drawFrame clears the surface, paints every currently visible word
// and mirrors the frame to the sink. A sink write failure drops the
// sink and lets the animation finish play-only.
func (p *Player) drawFrame(res *layout.Result, eff effects.Effect, elapsed time.Duration, sink video.FrameSink) video.FrameSink {
	p.canvas.Clear()
	p.canvas.SetFontSize(res.FontSize)
	for _, op := range eff.Render(res.Words, elapsed) {
		p.canvas.DrawText(op.Text, op.X, op.Y, op.Opacity, op.Scale)
	}
	if sink != nil {
		if err := sink.WriteFrame(p.canvas.Image()); err != nil {
			log.Printf("[!] Frame write failed, continuing play-only: %v", err)
			sink.Close()
			return nil
		}
	}
	return sink
}
