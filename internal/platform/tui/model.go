package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/platform"
	"github.com/vovakirdan/gravity-maze/internal/registry"
)

// resizer is implemented by games that can follow a terminal resize
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// pointer is implemented by games that accept mouse clicks.
type pointer interface {
	ScreenToWorld(col, row int) core.Point
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        platform.Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	held       *HeldKeys
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	left       bool // the game reached its exit state
	inSession  bool // exit returns to the level picker instead of quitting
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc platform.Services, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	svc = svc.WithDefaults()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		held:       NewHeldKeys(svc.HoldTicks),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.svc.Audio.StopMusic()
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsDirection(action):
		m.held.Press(action)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p, ok := m.game.(pointer)
	if !ok {
		return m, nil
	}
	world := p.ScreenToWorld(msg.X, msg.Y)
	m.inputFrame.Click(world.X, world.Y)
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in
// place are reset unless a finished run is on screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.left || m.quitting {
		return m, nil
	}

	m.held.Apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.svc.Handle(m.game.ID(), result.Events)

	if m.gameState.Exit {
		m.svc.Audio.StopMusic()
		m.held.Clear()
		m.left = true
		if m.inSession {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as text under ~/.maze/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.svc.Logger.Warn("screenshot: no home directory", "error", err)
		return
	}
	dir := filepath.Join(home, ".maze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.Logger.Warn("screenshot: cannot create directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.Logger.Warn("screenshot: write failed", "error", err)
		return
	}
	m.svc.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Left reports whether the game reached its exit state.
func (m Model) Left() bool {
	return m.left
}

// Run plays a single game until it exits.
func Run(game registry.Game, svc platform.Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, svc, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
