package core

// EventKind identifies a side effect requested by a game tick.
type EventKind int

const (
	EventMusicStart  EventKind = iota + 1 // start the looping track
	EventMusicStop                        // stop the looping track
	EventCheer                            // play the one-shot win sound
	EventRunFinished                      // a run reached the goal
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMusicStart:
		return "MusicStart"
	case EventMusicStop:
		return "MusicStop"
	case EventCheer:
		return "Cheer"
	case EventRunFinished:
		return "RunFinished"
	default:
		return "Unknown"
	}
}

// Event is emitted by Game.Step for the platform to act on.
// Platforms map events to audio and persistence; games never call those directly.
type Event struct {
	Kind EventKind

	// Ticks and ElapsedMS are set for EventRunFinished.
	Ticks     int
	ElapsedMS int
}

// HasEvent reports whether events contains an event of the given kind.
func HasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
