package mazegame

import "github.com/vovakirdan/gravity-maze/internal/maze"

// Snapshot captures the game state for frontends that draw in world
// space and for determinism testing.
type Snapshot struct {
	Tick      uint64
	LevelID   string
	Phase     Phase
	Paused    bool
	Actor     maze.Actor
	Facing    maze.Facing
	RunTicks  int
	ElapsedMS int // live time of the current run
	LastMS    int // time of the last finished run
	BannerY   int
	Focus     Button
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		LevelID:   g.level.ID,
		Phase:     g.phase,
		Paused:    g.paused,
		Actor:     g.actor,
		Facing:    g.facing,
		RunTicks:  g.runTicks,
		ElapsedMS: g.ElapsedMS(),
		LastMS:    g.lastMS,
		BannerY:   int(g.bannerY),
		Focus:     g.focus,
	}
}
