// Package audio plays the background music loop and the win cheer.
package audio

// Player is the audio service the frontends drive from game events.
type Player interface {
	PlayMusic()
	StopMusic()
	PlayCheer()
	Close() error
}

// Nop is a Player that stays silent. Used with --mute and for SSH
// sessions, which have no local speaker.
type Nop struct{}

func (Nop) PlayMusic()   {}
func (Nop) StopMusic()   {}
func (Nop) PlayCheer()   {}
func (Nop) Close() error { return nil }
