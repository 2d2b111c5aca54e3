// Package platform holds what the terminal and window frontends share:
// the services a game's events are carried out with.
package platform

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-maze/internal/audio"
	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/live"
	"github.com/vovakirdan/gravity-maze/internal/storage"
)

// DefaultHoldTicks is how long a terminal direction stays held after its
// last key event when no hold time is configured.
const DefaultHoldTicks = 12

// Store is the run persistence the frontends use.
type Store interface {
	SaveRun(r storage.Run) (int64, error)
	TopTimes(levelID string, limit int) ([]storage.Run, error)
	BestTime(levelID string) (ms int, ok bool, err error)
}

// Services are the side effects a session performs on behalf of the
// game. Every field is optional.
type Services struct {
	Store     Store
	Audio     audio.Player
	Hub       *live.Hub
	Logger    *log.Logger
	Player    string // recorded with each run
	HoldTicks int    // terminal only
}

// WithDefaults fills unset fields with silent or local defaults.
func (s Services) WithDefaults() Services {
	if s.Audio == nil {
		s.Audio = audio.Nop{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.Player == "" {
		s.Player = storage.LocalPlayer
	}
	if s.HoldTicks <= 0 {
		s.HoldTicks = DefaultHoldTicks
	}
	return s
}

// Handle carries out the events one game step produced. Call it on a
// value returned by WithDefaults.
func (s Services) Handle(levelID string, events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventMusicStart:
			s.Audio.PlayMusic()
		case core.EventMusicStop:
			s.Audio.StopMusic()
		case core.EventCheer:
			s.Audio.PlayCheer()
		case core.EventRunFinished:
			s.recordRun(levelID, e)
		}
	}
}

// recordRun saves and announces a finished run. Saving is best-effort;
// the game goes on without storage.
func (s Services) recordRun(levelID string, e core.Event) {
	run := storage.Run{
		LevelID:   levelID,
		Player:    s.Player,
		Ticks:     e.Ticks,
		ElapsedMS: e.ElapsedMS,
	}
	s.Logger.Info("run finished", "level", run.LevelID, "player", run.Player, "ms", run.ElapsedMS)

	if s.Store != nil {
		if _, err := s.Store.SaveRun(run); err != nil {
			s.Logger.Warn("could not save run", "level", run.LevelID, "error", err)
		}
	}
	if s.Hub != nil {
		s.Hub.Publish(live.Finished{
			LevelID:   run.LevelID,
			Player:    run.Player,
			Ticks:     run.Ticks,
			ElapsedMS: run.ElapsedMS,
		})
	}
}
