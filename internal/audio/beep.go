package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	cheerDuration = 900 * time.Millisecond
)

// BeepPlayer synthesizes audio through the beep speaker.
type BeepPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	volume float64
	closed bool
}

// NewBeepPlayer opens the speaker. volume is a base-2 exponent: 0 plays at
// full level, -1 at half, and so on.
func NewBeepPlayer(volume float64) (*BeepPlayer, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	p := &BeepPlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	p.music = &beep.Ctrl{Streamer: NewMusicGenerator(sampleRate), Paused: true}
	p.mixer.Add(p.withVolume(p.music))

	speaker.Play(p.mixer)
	return p, nil
}

func (p *BeepPlayer) withVolume(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: p.volume}
}

// PlayMusic restarts the background loop from its first note.
func (p *BeepPlayer) PlayMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	speaker.Lock()
	p.music.Streamer = NewMusicGenerator(sampleRate)
	p.music.Paused = false
	speaker.Unlock()
}

// StopMusic pauses the background loop.
func (p *BeepPlayer) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	speaker.Lock()
	p.music.Paused = true
	speaker.Unlock()
}

// PlayCheer plays the win fanfare once, over whatever else is playing.
func (p *BeepPlayer) PlayCheer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	cheer := beep.Take(sampleRate.N(cheerDuration), NewCheerGenerator(sampleRate))
	speaker.Lock()
	p.mixer.Add(p.withVolume(cheer))
	speaker.Unlock()
}

// Close silences everything and releases the audio device.
func (p *BeepPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	speaker.Clear()
	speaker.Close()
	return nil
}
