package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(44100)

	noteDuration = 180 * time.Millisecond
	noteGap      = 60 * time.Millisecond
	noteAttack   = 10 * time.Millisecond
	noteRelease  = 120 * time.Millisecond
)

// chimeNotes is the completion motif, ascending major triad (Hz)
var chimeNotes = []float64{659.25, 783.99, 1046.50}

// Player plays the completion cue
type Player interface {
	PlayChime()
	Close()
}

// NoopPlayer is the silent Player used when audio is disabled or unavailable
type NoopPlayer struct{}

func (NoopPlayer) PlayChime() {}
func (NoopPlayer) Close()     {}

// ChimePlayer plays the completion chime on the system speaker
type ChimePlayer struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
	logger      *zap.SugaredLogger
}

// NewChimePlayer initializes the speaker; volume is an effects.Volume base-2 exponent
func NewChimePlayer(volume float64, logger *zap.SugaredLogger) (*ChimePlayer, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &ChimePlayer{
		volume:      volume,
		initialized: true,
		logger:      logger,
	}, nil
}

// PlayChime queues the chime without blocking the caller
func (p *ChimePlayer) PlayChime() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Play(NewChime(p.volume, sampleRate))
	p.logger.Debug("Chime queued")
}

// Close releases the speaker
func (p *ChimePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// NewChime builds the finite chime streamer: each note is an enveloped sine
// followed by a short silence, the whole sequence scaled by volume
func NewChime(volume float64, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(chimeNotes)*2)
	for _, freq := range chimeNotes {
		tone := NewEnvelope(NewSine(freq, noteDuration, rate), noteDuration, noteAttack, noteRelease, rate)
		parts = append(parts, tone, beep.Silence(rate.N(noteGap)))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   volume,
	}
}

// ChimeLength returns the chime length in samples at rate
func ChimeLength(rate beep.SampleRate) int {
	return len(chimeNotes) * (rate.N(noteDuration) + rate.N(noteGap))
}

// NewSine creates a sine oscillator lasting duration
func NewSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	step := freq / float64(rate)
	phase := 0.0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := math.Sin(2 * math.Pi * phase)
			samples[i] = [2]float64{v, v}
			if phase += step; phase >= 1 {
				phase -= math.Floor(phase)
			}
		}
		return len(samples), true
	})
	return beep.Take(rate.N(duration), tone)
}

// envelope applies linear attack and release ramps and cuts the stream at total samples
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// NewEnvelope wraps s with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	left := e.total - e.pos
	if left <= 0 {
		return 0, false
	}
	if len(samples) > left {
		samples = samples[:left]
	}

	n, ok := e.s.Stream(samples)
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

// gain is the lower of the attack and release ramps at pos, 1 in between
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if e.release > 0 {
		if r := float64(e.total-pos) / float64(e.release); r < g {
			g = r
		}
	}
	return max(g, 0)
}

func (e *envelope) Err() error { return e.s.Err() }
