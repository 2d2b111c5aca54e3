package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/platform"
	"github.com/vovakirdan/gravity-maze/internal/registry"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	pickerItemStyle  = lipgloss.NewStyle()
	pickerCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pickerHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PickerModel is the Bubble Tea model for the level picker.
type PickerModel struct {
	items     []registry.GameInfo
	best      map[string]int // best time in ms per level with runs
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	selected  *registry.GameInfo
	openTimes bool
}

// NewPickerModel lists every registered level with its best time.
func NewPickerModel(reg *registry.Registry, store platform.Store, width, height int) PickerModel {
	m := PickerModel{
		items:     reg.List(),
		best:      make(map[string]int),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		for _, it := range m.items {
			if ms, ok, err := store.BestTime(it.ID); err == nil && ok {
				m.best[it.ID] = ms
			}
		}
	}
	return m
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := max(len(m.items)-1, 0)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, last)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, last)
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case MenuActionTimes:
		m.openTimes = true
	}
	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(pickerTitleStyle.Render("G R A V I T Y   M A Z E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a level", m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor, style := "  ", pickerItemStyle
		if i == m.cursor {
			cursor, style = "> ", pickerCurStyle
		}
		best := "no runs yet"
		if ms, ok := m.best[it.ID]; ok {
			best = fmt.Sprintf("best %.3fs", float64(ms)/1000)
		}
		line := fmt.Sprintf("%s%-16s %14s", cursor, it.Title, best)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(pickerHintStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Best times  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen level, or nil if none was chosen.
func (m PickerModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsTimes returns true if user asked for the best-times board.
func (m PickerModel) WantsTimes() bool {
	return m.openTimes
}

// centerText centers text within the given width, measuring printable
// cells so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
