package mazegame

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/registry"
)

var testOpts = Options{Step: 1, ActorSize: 20, CellWidth: 2, ShowTimer: true}

// corridor is a straight run: start at (30,30), goal three cells right.
func corridor(t *testing.T) *levels.Level {
	t.Helper()
	l, err := levels.Parse([]byte(`
id: corridor
title: Corridor
rows:
  - "11111"
  - "10021"
  - "11111"
`), testOpts.ActorSize, testOpts.Step)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return l
}

func gravity(t *testing.T) *levels.Level {
	t.Helper()
	all, err := levels.Builtin(testOpts.ActorSize, testOpts.Step)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := levels.Find(all, levels.DefaultID)
	if !ok {
		t.Fatal("gravity level missing")
	}
	return l
}

func newGame(t *testing.T, l *levels.Level) *Game {
	t.Helper()
	g := New(l, testOpts)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	return core.NewInputFrame(actions...)
}

func startRun(t *testing.T, g *Game) {
	t.Helper()
	res := g.Step(press(core.ActionConfirm))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Phase())
	}
	if !core.HasEvent(res.Events, core.EventMusicStart) {
		t.Error("starting a run should start the music")
	}
}

func TestResetStartsOnTitle(t *testing.T) {
	g := newGame(t, corridor(t))
	if g.Phase() != PhaseTitle {
		t.Errorf("phase = %v, expected title", g.Phase())
	}
	if g.ID() != "corridor" || g.Title() != "Corridor" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}

	// Movement keys do nothing on the title screen.
	g.Step(press(core.ActionRight))
	if g.Phase() != PhaseTitle || g.Snapshot().Actor.X != 30 {
		t.Error("title screen should ignore movement")
	}
}

func TestClickPlayButton(t *testing.T) {
	g := newGame(t, gravity(t))
	play := g.Layout().Play

	var miss core.InputFrame
	miss.Click(play.X-1, play.Y)
	g.Step(miss)
	if g.Phase() != PhaseTitle {
		t.Fatal("click outside Play should not start")
	}

	var hit core.InputFrame
	hit.Click(play.X+1, play.Y+1)
	res := g.Step(hit)
	if g.Phase() != PhasePlaying {
		t.Fatal("click on Play should start the run")
	}
	if !core.HasEvent(res.Events, core.EventMusicStart) {
		t.Error("expected MusicStart")
	}
}

func TestRunToGoal(t *testing.T) {
	g := newGame(t, corridor(t))
	startRun(t, g)

	var finished []core.Event
	var all []core.Event
	for i := 0; i < 200 && g.Phase() == PhasePlaying; i++ {
		res := g.Step(press(core.ActionRight))
		all = append(all, res.Events...)
		for _, e := range res.Events {
			if e.Kind == core.EventRunFinished {
				finished = append(finished, e)
			}
		}
	}

	if g.Phase() != PhaseWon {
		t.Fatalf("phase = %v, expected won", g.Phase())
	}
	if len(finished) != 1 {
		t.Fatalf("expected one RunFinished, got %d", len(finished))
	}

	// Goal cell starts at x=90; the box overlaps it once x reaches 71.
	if finished[0].Ticks != 41 {
		t.Errorf("Ticks = %d, expected 41", finished[0].Ticks)
	}
	if finished[0].ElapsedMS != 410 {
		t.Errorf("ElapsedMS = %d, expected 410", finished[0].ElapsedMS)
	}
	if !core.HasEvent(all, core.EventMusicStop) || !core.HasEvent(all, core.EventCheer) {
		t.Error("winning should stop the music and cheer")
	}

	st := g.State()
	if !st.GameOver || st.Score != 410 {
		t.Errorf("State() = %+v, expected GameOver with score 410", st)
	}

	// Staying on the win screen does not fire again.
	for i := 0; i < 50; i++ {
		res := g.Step(press(core.ActionRight))
		if core.HasEvent(res.Events, core.EventRunFinished) {
			t.Fatal("win fired twice")
		}
	}
}

func TestPauseFreezesTimer(t *testing.T) {
	g := newGame(t, corridor(t))
	startRun(t, g)

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionRight))
	before := g.Snapshot()

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 10; i++ {
		g.Step(press(core.ActionRight))
	}
	during := g.Snapshot()
	if during.RunTicks != before.RunTicks || during.Actor != before.Actor {
		t.Errorf("paused game advanced: %+v -> %+v", before, during)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Fatal("expected unpaused")
	}
	if g.Snapshot().RunTicks != before.RunTicks+1 {
		t.Error("unpause tick should advance the run")
	}
}

func TestRestartResetsRun(t *testing.T) {
	g := newGame(t, corridor(t))
	startRun(t, g)

	for i := 0; i < 10; i++ {
		g.Step(press(core.ActionRight))
	}
	g.Step(press(core.ActionRestart))

	s := g.Snapshot()
	if s.Actor.X != 30 || s.Actor.Y != 30 || s.RunTicks != 0 {
		t.Errorf("restart did not reset the run: %+v", s)
	}
	if s.Phase != PhasePlaying {
		t.Errorf("phase = %v, expected playing", s.Phase)
	}
}

func TestBackToTitleStopsMusic(t *testing.T) {
	g := newGame(t, corridor(t))
	startRun(t, g)

	res := g.Step(press(core.ActionBack))
	if g.Phase() != PhaseTitle {
		t.Errorf("phase = %v, expected title", g.Phase())
	}
	if !core.HasEvent(res.Events, core.EventMusicStop) {
		t.Error("leaving a run should stop the music")
	}
}

func winCorridor(t *testing.T) *Game {
	t.Helper()
	g := newGame(t, corridor(t))
	startRun(t, g)
	for i := 0; i < 200 && g.Phase() == PhasePlaying; i++ {
		g.Step(press(core.ActionRight))
	}
	if g.Phase() != PhaseWon {
		t.Fatal("corridor run did not finish")
	}
	return g
}

func TestWonScreenButtons(t *testing.T) {
	g := winCorridor(t)
	if g.Snapshot().Focus != ButtonMenu {
		t.Errorf("focus = %v, expected Main Menu", g.Snapshot().Focus)
	}
	g.Step(press(core.ActionConfirm))
	if g.Phase() != PhaseTitle {
		t.Errorf("Main Menu should return to title, phase = %v", g.Phase())
	}

	g = winCorridor(t)
	g.Step(press(core.ActionRight))
	if g.Snapshot().Focus != ButtonExit {
		t.Fatal("Right should focus Exit")
	}
	g.Step(press(core.ActionConfirm))
	if !g.State().Exit {
		t.Error("Exit should end the game")
	}
}

func TestWonScreenClickExit(t *testing.T) {
	g := winCorridor(t)
	cx, cy := g.Layout().Exit.Center()
	var in core.InputFrame
	in.Click(cx, cy)
	g.Step(in)
	if g.Phase() != PhaseExit {
		t.Errorf("phase = %v, expected exit", g.Phase())
	}
}

func TestWonScreenReplay(t *testing.T) {
	g := winCorridor(t)
	res := g.Step(press(core.ActionRestart))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Phase())
	}
	if !core.HasEvent(res.Events, core.EventMusicStart) {
		t.Error("replay should restart the music")
	}
}

func TestBannerSlidesIn(t *testing.T) {
	g := winCorridor(t)
	if g.Snapshot().BannerY >= g.Layout().Banner.Y {
		t.Fatal("banner should start above its resting place")
	}
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.Snapshot().BannerY; got != g.Layout().Banner.Y {
		t.Errorf("BannerY = %d, expected %d", got, g.Layout().Banner.Y)
	}
}

func TestQuitWhilePlaying(t *testing.T) {
	g := newGame(t, corridor(t))
	startRun(t, g)

	res := g.Step(press(core.ActionQuit))
	if !res.State.Exit {
		t.Error("quit should set Exit")
	}
	if !core.HasEvent(res.Events, core.EventMusicStop) {
		t.Error("quitting a run should stop the music")
	}
}

func TestDeterminism(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch {
		case i == 0:
			return press(core.ActionConfirm)
		case i%7 == 0:
			return press(core.ActionDown, core.ActionRight)
		case i%3 == 0:
			return press(core.ActionRight)
		default:
			return press(core.ActionDown)
		}
	}

	g1 := newGame(t, gravity(t))
	g2 := newGame(t, gravity(t))
	for i := 0; i < 500; i++ {
		g1.Step(script(i))
		g2.Step(script(i))
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestRenderTitle(t *testing.T) {
	g := newGame(t, gravity(t))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"GRAVITY MAZE", "Play", "Gravity Maze"} {
		if !strings.Contains(out, want) {
			t.Errorf("title screen missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlaying(t *testing.T) {
	g := newGame(t, gravity(t))
	startRun(t, g)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// 20 wall cells, two columns each, centered in 80 columns.
	top := screen.Row(hudHeight)
	if !strings.Contains(top, strings.Repeat("█", 40)) {
		t.Errorf("top wall row = %q", top)
	}
	if screen.GetCell(20, hudHeight).Color != core.ColorWall {
		t.Error("walls should be colored")
	}
	// Goal at (15, 17).
	if screen.Get(20+15*2, hudHeight+17) != '▒' {
		t.Errorf("goal not drawn, row = %q", screen.Row(hudHeight+17))
	}
	// Idle actor centered at (40, 40): column 20+40*2/30, row 2+1.
	if screen.Get(22, 3) != '●' {
		t.Errorf("actor not drawn, row = %q", screen.Row(3))
	}
	if !strings.Contains(screen.Row(0), "Time: 0.000s") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestRenderWon(t *testing.T) {
	g := newGame(t, gravity(t))
	startRun(t, g)
	g.runTicks = 41
	g.win()
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"YOU WIN!", "▸ Main Menu ◂", "Exit", "Time: 0.410 seconds", "[___]"} {
		if !strings.Contains(out, want) {
			t.Errorf("win screen missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(gravity(t), testOpts)
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 100})
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected size warning:\n%s", screen.String())
	}
}

func TestScreenToWorldClicksPlay(t *testing.T) {
	g := newGame(t, gravity(t))
	box := g.buttonBox(ButtonPlay)

	p := g.ScreenToWorld(box.X, box.Y)
	var in core.InputFrame
	in.Click(p.X, p.Y)
	g.Step(in)
	if g.Phase() != PhasePlaying {
		t.Errorf("clicking the drawn Play box should start, pointer = %+v", p)
	}
}

func TestScreenToWorldMapsCells(t *testing.T) {
	g := newGame(t, gravity(t))
	startRun(t, g)

	// Column 20 is the first map column, row 2 the first map row.
	p := g.ScreenToWorld(20+2*15, 2+17)
	if p.X < 450 || p.X >= 480 || p.Y < 510 || p.Y >= 540 {
		t.Errorf("ScreenToWorld = %+v, expected inside goal cell", p)
	}
}

func TestLayoutScales(t *testing.T) {
	l := LayoutFor(600, 600)
	if l.Play != core.NewRect(250, 240, 100, 50) {
		t.Errorf("Play = %+v", l.Play)
	}
	if l.Menu != core.NewRect(50, 200, 200, 50) || l.Exit != core.NewRect(400, 200, 100, 50) {
		t.Errorf("Menu/Exit = %+v / %+v", l.Menu, l.Exit)
	}

	half := LayoutFor(300, 300)
	if half.Play != core.NewRect(125, 120, 50, 25) {
		t.Errorf("half Play = %+v", half.Play)
	}
	if half.Hit(core.Point{X: 130, Y: 130}, ButtonPlay) != ButtonPlay {
		t.Error("Hit should find Play")
	}
}

func TestRegister(t *testing.T) {
	all, err := levels.Builtin(testOpts.ActorSize, testOpts.Step)
	if err != nil {
		t.Fatal(err)
	}
	reg := registry.New()
	if err := Register(reg, all, testOpts); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Len() != len(all) {
		t.Errorf("registered %d games, expected %d", reg.Len(), len(all))
	}
	if list := reg.List(); list[0].ID != levels.DefaultID {
		t.Errorf("first game = %q", list[0].ID)
	}
	g, err := reg.Create("spiral")
	if err != nil || g.ID() != "spiral" {
		t.Errorf("Create(spiral) = %v, %v", g, err)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(12345); got != "Time: 12.345 seconds" {
		t.Errorf("FormatTime = %q", got)
	}
}
