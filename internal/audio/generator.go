package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note frequencies in Hz.
const (
	noteA3 = 220.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

var musicNotes = []float64{
	noteA3, noteC4, noteE4, noteA4,
	noteG4, noteE4, noteC4, noteE4,
	noteA3, noteC4, noteE4, noteG4,
	noteA4, noteG4, noteE4, noteC4,
}

var cheerNotes = []float64{noteC4, noteE4, noteG4, noteC5, noteE5, noteG5}

// MusicGenerator plays a soft arpeggio forever.
type MusicGenerator struct {
	sr      beep.SampleRate
	pos     int
	noteLen int
}

// NewMusicGenerator creates the background music generator.
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	return &MusicGenerator{
		sr:      sr,
		noteLen: sr.N(250 * time.Millisecond),
	}
}

// Note returns the frequency playing at sample position pos.
func (g *MusicGenerator) Note(pos int) float64 {
	return musicNotes[(pos/g.noteLen)%len(musicNotes)]
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		inNote := float64(g.pos%g.noteLen) / float64(g.noteLen)

		// Pluck envelope: fast attack, exponential tail
		env := math.Min(inNote*40, 1) * math.Exp(-inNote*3)
		freq := g.Note(g.pos)
		sample := 0.12 * env * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error {
	return nil
}

// CheerGenerator plays a rising fanfare. It never ends on its own; wrap it
// in beep.Take.
type CheerGenerator struct {
	sr      beep.SampleRate
	pos     int
	noteLen int
}

// NewCheerGenerator creates the win fanfare generator.
func NewCheerGenerator(sr beep.SampleRate) *CheerGenerator {
	return &CheerGenerator{
		sr:      sr,
		noteLen: sr.N(90 * time.Millisecond),
	}
}

func (g *CheerGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		idx := min(g.pos/g.noteLen, len(cheerNotes)-1)
		freq := cheerNotes[idx]

		// Last note rings out; earlier ones are short stabs
		env := math.Exp(-t * 2)
		if idx < len(cheerNotes)-1 {
			inNote := float64(g.pos%g.noteLen) / float64(g.noteLen)
			env *= 1 - 0.5*inNote
		}

		square := 1.0
		if math.Sin(2*math.Pi*freq*t) < 0 {
			square = -1.0
		}
		sample := env * (0.2*math.Sin(2*math.Pi*freq*t) + 0.05*square)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CheerGenerator) Err() error {
	return nil
}
