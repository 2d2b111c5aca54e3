package tui

import (
	"errors"
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/games/mazegame"
	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/live"
	"github.com/vovakirdan/gravity-maze/internal/platform"
	"github.com/vovakirdan/gravity-maze/internal/storage"
)

type fakeAudio struct {
	playing bool
	starts  int
	cheers  int
	closed  bool
}

func (a *fakeAudio) PlayMusic()   { a.playing = true; a.starts++ }
func (a *fakeAudio) StopMusic()   { a.playing = false }
func (a *fakeAudio) PlayCheer()   { a.cheers++ }
func (a *fakeAudio) Close() error { a.closed = true; return nil }

type memStore struct {
	runs []storage.Run
	err  error
}

func (s *memStore) SaveRun(r storage.Run) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	r.ID = int64(len(s.runs) + 1)
	s.runs = append(s.runs, r)
	return r.ID, nil
}

func (s *memStore) TopTimes(levelID string, limit int) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range s.runs {
		if r.LevelID == levelID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElapsedMS < out[j].ElapsedMS })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) BestTime(levelID string) (int, bool, error) {
	runs, _ := s.TopTimes(levelID, 1)
	if len(runs) == 0 {
		return 0, false, nil
	}
	return runs[0].ElapsedMS, true, nil
}

var testCfg = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100}

var testOpts = mazegame.Options{Step: 1, ActorSize: 20, CellWidth: 2}

// corridor wins after 41 ticks of moving right.
func corridor(t *testing.T) *levels.Level {
	t.Helper()
	l, err := levels.Parse([]byte(`
id: corridor
title: Corridor
order: 1
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
	l, _ := levels.Find(all, levels.DefaultID)
	return l
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m, _ = update(t, m, TickMsg{})
	}
	return m
}

func snapshot(m Model) mazegame.Snapshot {
	return m.game.(*mazegame.Game).Snapshot()
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newTestModel(t *testing.T, l *levels.Level, svc platform.Services) Model {
	t.Helper()
	m := NewModel(mazegame.New(l, testOpts), svc, testCfg)
	m.Init()
	return m
}

func TestModelPlaysRunAndRecordsIt(t *testing.T) {
	sound := &fakeAudio{}
	store := &memStore{}
	hub := live.NewHub()
	feed := hub.Subscribe(4)

	m := newTestModel(t, corridor(t), platform.Services{Audio: sound, Store: store, Hub: hub, HoldTicks: 100})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = ticks(t, m, 1)
	if !sound.playing {
		t.Fatal("music should play once the run starts")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 40)
	if len(store.runs) != 0 {
		t.Fatal("run recorded before reaching the goal")
	}
	m = ticks(t, m, 1)

	if got := snapshot(m).Phase; got != mazegame.PhaseWon {
		t.Fatalf("phase = %v, want won", got)
	}
	if sound.playing || sound.cheers != 1 {
		t.Errorf("audio = %+v; want music stopped and one cheer", sound)
	}
	if len(store.runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(store.runs))
	}
	run := store.runs[0]
	if run.LevelID != "corridor" || run.Player != storage.LocalPlayer || run.Ticks != 41 || run.ElapsedMS != 410 {
		t.Errorf("saved run = %+v", run)
	}

	select {
	case got := <-feed.Events():
		if got.LevelID != "corridor" || got.ElapsedMS != 410 {
			t.Errorf("published %+v", got)
		}
	default:
		t.Error("finished run was not published")
	}

	// Staying on the goal does not record again.
	m = ticks(t, m, 20)
	if len(store.runs) != 1 {
		t.Errorf("saved %d runs after idling on the win screen", len(store.runs))
	}
}

func TestModelStoreFailureIsNotFatal(t *testing.T) {
	store := &memStore{err: errors.New("read-only")}
	m := newTestModel(t, corridor(t), platform.Services{Store: store, HoldTicks: 100})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 41)

	if snapshot(m).Phase != mazegame.PhaseWon {
		t.Error("a failing store must not stop the game")
	}
}

func TestModelExitButtonQuits(t *testing.T) {
	m := newTestModel(t, corridor(t), platform.Services{HoldTicks: 100})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 41)

	// Right already moved focus to Exit.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg{})

	if !m.Left() || !m.IsQuitting() {
		t.Error("Exit should leave the game and quit")
	}
	if !isQuit(cmd) {
		t.Error("expected tea.Quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelQuitKeyStopsMusic(t *testing.T) {
	sound := &fakeAudio{}
	m := newTestModel(t, corridor(t), platform.Services{Audio: sound})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, runeKey("q"))

	if !m.IsQuitting() || !isQuit(cmd) {
		t.Error("q should quit")
	}
	if sound.playing {
		t.Error("music should stop on quit")
	}
}

func TestModelMouseClickStartsRun(t *testing.T) {
	sound := &fakeAudio{}
	m := newTestModel(t, gravity(t), platform.Services{Audio: sound})

	// The Play button is drawn around column 40, rows 9 to 12.
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, TickMsg{})

	if got := snapshot(m).Phase; got != mazegame.PhasePlaying {
		t.Errorf("phase = %v after clicking Play, want playing", got)
	}
	if sound.starts != 1 {
		t.Errorf("music starts = %d, want 1", sound.starts)
	}
}

func TestModelIgnoresOtherMouseEvents(t *testing.T) {
	m := newTestModel(t, gravity(t), platform.Services{})

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = update(t, m, TickMsg{})

	if got := snapshot(m).Phase; got != mazegame.PhaseTitle {
		t.Errorf("phase = %v, want title", got)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, corridor(t), platform.Services{HoldTicks: 100})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 10)
	before := snapshot(m)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	after := snapshot(m)
	if after.Phase != mazegame.PhasePlaying || after.Actor != before.Actor || after.RunTicks != before.RunTicks {
		t.Errorf("resize changed the run: before %+v, after %+v", before, after)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelPauseFreezesActor(t *testing.T) {
	m := newTestModel(t, corridor(t), platform.Services{HoldTicks: 100})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = ticks(t, m, 5)

	m, _ = update(t, m, runeKey("p"))
	m = ticks(t, m, 1)
	paused := snapshot(m)
	m = ticks(t, m, 10)

	if got := snapshot(m); got.Actor != paused.Actor || got.RunTicks != paused.RunTicks {
		t.Errorf("actor moved while paused: %+v -> %+v", paused.Actor, got.Actor)
	}
}

func TestModelViewRendersGame(t *testing.T) {
	m := newTestModel(t, gravity(t), platform.Services{})
	if m.View() == "" {
		t.Error("View should render the title screen")
	}
}
