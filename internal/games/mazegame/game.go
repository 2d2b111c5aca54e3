// Package mazegame implements the maze as a registry.Game: a title screen,
// a timed run through the level and a win screen. Audio and persistence
// are requested through core events and carried out by the platform.
package mazegame

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/gravity-maze/internal/config"
	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/maze"
	"github.com/vovakirdan/gravity-maze/internal/registry"
)

// Phase is the top-level game state.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseWon
	PhaseExit
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Banner animation: the "You Win!" text drops in from above the screen.
const (
	bannerStartY   = -50
	bannerDuration = 1.2 // seconds
)

// Options tune a game instance.
type Options struct {
	Step      int  // world units per tick
	ActorSize int  // player bounding box side
	CellWidth int  // terminal columns per grid cell
	ShowTimer bool // live timer in the HUD
}

// OptionsFromConfig extracts game options from the loaded config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Step:      cfg.Physics.Step,
		ActorSize: cfg.Physics.ActorSize,
		CellWidth: cfg.Display.CellWidth,
		ShowTimer: cfg.Display.ShowTimer,
	}
}

// Game is one level of the maze with its own state machine.
type Game struct {
	level    *levels.Level
	opts     Options
	resolver *maze.Resolver
	layout   Layout

	phase  Phase
	paused bool
	tick   uint64 // total ticks since Reset

	actor  maze.Actor
	facing maze.Facing
	latch  maze.GoalLatch

	runTicks int // ticks spent playing the current run
	lastMS   int // elapsed time of the last finished run
	tickRate int

	banner  *gween.Tween
	bannerY float32
	focus   Button

	screenW, screenH int
	view             view
}

// New creates a game for a validated level.
func New(level *levels.Level, opts Options) *Game {
	if opts.Step <= 0 {
		opts.Step = 1
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 2
	}
	w, h := level.Size()
	g := &Game{
		level:    level,
		opts:     opts,
		resolver: maze.NewResolver(level.Grid(), opts.Step),
		layout:   LayoutFor(w, h),
		tickRate: core.DefaultTickRate,
		focus:    ButtonPlay,
	}
	g.resetRun()
	g.Resize(0, 0)
	return g
}

// Register adds one game per level to reg.
func Register(reg *registry.Registry, all []*levels.Level, opts Options) error {
	for _, l := range all {
		if err := reg.Register(l.Order, func() registry.Game { return New(l, opts) }); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level's display name.
func (g *Game) Title() string {
	return g.level.Title
}

// Reset returns to the title screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultTickRate
	}
	g.tick = 0
	g.phase = PhaseTitle
	g.paused = false
	g.lastMS = 0
	g.focus = ButtonPlay
	g.resetRun()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the terminal projection without touching game state.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.view = newView(g.level.Grid(), g.opts.CellWidth, w, h)
}

func (g *Game) resetRun() {
	g.actor = maze.NewActor(g.level.Start.X, g.level.Start.Y, g.opts.ActorSize)
	g.facing = maze.FacingIdle
	g.latch.Reset()
	g.runTicks = 0
	g.paused = false
	g.banner = nil
	g.bannerY = bannerStartY
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	var events []core.Event

	if in.Has(core.ActionQuit) && g.phase != PhaseExit {
		if g.phase == PhasePlaying {
			events = append(events, core.Event{Kind: core.EventMusicStop})
		}
		g.phase = PhaseExit
		return core.StepResult{State: g.State(), Events: events}
	}

	switch g.phase {
	case PhaseTitle:
		events = g.stepTitle(in, events)
	case PhasePlaying:
		events = g.stepPlaying(in, events)
	case PhaseWon:
		events = g.stepWon(in, events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) stepTitle(in core.InputFrame, events []core.Event) []core.Event {
	start := in.Has(core.ActionConfirm)
	if in.Has(core.ActionClick) && g.layout.Hit(in.Pointer, ButtonPlay) == ButtonPlay {
		start = true
	}
	if start {
		g.resetRun()
		g.phase = PhasePlaying
		events = append(events, core.Event{Kind: core.EventMusicStart})
	}
	return events
}

func (g *Game) stepPlaying(in core.InputFrame, events []core.Event) []core.Event {
	switch {
	case in.Has(core.ActionBack):
		g.phase = PhaseTitle
		g.focus = ButtonPlay
		return append(events, core.Event{Kind: core.EventMusicStop})
	case in.Has(core.ActionRestart):
		g.resetRun()
		return events
	case in.Has(core.ActionPause):
		g.paused = !g.paused
	}
	if g.paused {
		return events
	}

	dir := maze.DirFromInput(in)
	var res maze.Result
	g.actor, res = g.resolver.Apply(g.actor, dir)
	g.facing = maze.FacingFor(dir)
	g.runTicks++

	if g.latch.Observe(res.GoalReached) {
		g.win()
		events = append(events,
			core.Event{Kind: core.EventMusicStop},
			core.Event{Kind: core.EventCheer},
			core.Event{Kind: core.EventRunFinished, Ticks: g.runTicks, ElapsedMS: g.lastMS},
		)
	}
	return events
}

func (g *Game) win() {
	g.phase = PhaseWon
	g.lastMS = g.ElapsedMS()
	g.focus = ButtonMenu
	g.bannerY = bannerStartY
	g.banner = gween.New(bannerStartY, float32(g.layout.Banner.Y), bannerDuration, ease.OutBounce)
}

func (g *Game) stepWon(in core.InputFrame, events []core.Event) []core.Event {
	if g.banner != nil {
		y, done := g.banner.Update(1 / float32(g.tickRate))
		g.bannerY = y
		if done {
			g.banner = nil
		}
	}

	switch {
	case in.Has(core.ActionLeft):
		g.focus = ButtonMenu
	case in.Has(core.ActionRight):
		g.focus = ButtonExit
	}

	pressed := ButtonNone
	switch {
	case in.Has(core.ActionClick):
		pressed = g.layout.Hit(in.Pointer, ButtonMenu, ButtonExit)
	case in.Has(core.ActionConfirm):
		pressed = g.focus
	case in.Has(core.ActionBack):
		pressed = ButtonMenu
	case in.Has(core.ActionRestart):
		g.resetRun()
		g.phase = PhasePlaying
		return append(events, core.Event{Kind: core.EventMusicStart})
	}

	switch pressed {
	case ButtonMenu:
		g.resetRun()
		g.phase = PhaseTitle
		g.focus = ButtonPlay
	case ButtonExit:
		g.phase = PhaseExit
	}
	return events
}

// ElapsedMS returns the current run's time in milliseconds.
func (g *Game) ElapsedMS() int {
	return g.runTicks * 1000 / g.tickRate
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.lastMS,
		GameOver: g.phase == PhaseWon,
		Paused:   g.paused,
		Exit:     g.phase == PhaseExit,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Level returns the level being played.
func (g *Game) Level() *levels.Level {
	return g.level
}

// Options returns the options the game was created with.
func (g *Game) Options() Options {
	return g.opts
}

// Layout returns the world-space screen layout.
func (g *Game) Layout() Layout {
	return g.layout
}

// FormatTime renders milliseconds the way the win screen shows them.
func FormatTime(ms int) string {
	return fmt.Sprintf("Time: %.3f seconds", float64(ms)/1000)
}
