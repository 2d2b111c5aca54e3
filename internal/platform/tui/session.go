package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/platform"
	"github.com/vovakirdan/gravity-maze/internal/registry"
)

type sessionView int

const (
	viewPicker sessionView = iota
	viewGame
	viewTimes
)

// SessionModel runs the full flow: level picker, game, best times and
// back to the picker. Used for local play without a level argument and
// for every SSH session.
type SessionModel struct {
	reg      *registry.Registry
	svc      platform.Services
	config   core.RuntimeConfig
	view     sessionView
	picker   PickerModel
	game     *Model
	times    TimesModel
	quitting bool
}

// NewSessionModel creates a session that starts at the level picker.
func NewSessionModel(reg *registry.Registry, svc platform.Services, cfg core.RuntimeConfig) SessionModel {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	svc = svc.WithDefaults()
	return SessionModel{
		reg:    reg,
		svc:    svc,
		config: cfg,
		picker: NewPickerModel(reg, svc.Store, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update routes messages to the active view.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewTimes:
		return m.updateTimes(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	m.picker = next.(PickerModel)

	switch {
	case m.picker.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.picker.WantsTimes():
		m.times = NewTimesModel(m.reg, m.svc.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewTimes
		return m, m.times.Init()

	case m.picker.Selected() != nil:
		game, err := m.reg.Create(m.picker.Selected().ID)
		if err != nil {
			// The picker only lists registered levels.
			m.svc.Logger.Error("cannot create level", "error", err)
			m.picker = NewPickerModel(m.reg, m.svc.Store, m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		gm := NewModel(game, m.svc, m.config)
		gm.inSession = true
		m.game = &gm
		m.view = viewGame
		m.svc.Logger.Debug("level started", "level", game.ID(), "player", m.svc.Player)
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(Model)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case gm.Left():
		m.backToPicker()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateTimes(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.times.Update(msg)
	m.times = next.(TimesModel)

	switch {
	case m.times.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.times.IsGoingBack():
		m.backToPicker()
		return m, nil
	}
	return m, cmd
}

// backToPicker rebuilds the picker so best times include the last run.
func (m *SessionModel) backToPicker() {
	m.game = nil
	m.view = viewPicker
	m.picker = NewPickerModel(m.reg, m.svc.Store, m.config.ScreenW, m.config.ScreenH)
}

// View renders the active view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewTimes:
		return m.times.View()
	default:
		return m.picker.View()
	}
}

// RunSession runs the picker flow until the user quits.
func RunSession(reg *registry.Registry, svc platform.Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(reg, svc, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
