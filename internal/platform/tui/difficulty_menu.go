package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// presetDescriptions explains each difficulty preset in the picker.
var presetDescriptions = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "Slow start, gentle speed-ups",
	config.DifficultyNormal: "Configured speed, speeds up as you eat",
	config.DifficultyHard:   "Fast start, frequent speed-ups",
	config.DifficultyFixed:  "Configured speed, never speeds up",
}

// DifficultyModel lets users choose a difficulty preset for the selected variant.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker with Normal preselected.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	cursor := 0
	for i, p := range config.Presets {
		if p == config.DifficultyNormal {
			cursor = i
		}
	}
	return DifficultyModel{
		title:     title,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = config.Presets[m.cursor]
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.Presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s %s", cursor, p, presetDescriptions[p])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or false while still choosing.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	return m.selection, !m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}
