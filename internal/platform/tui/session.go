package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateDifficulty
	stateGame
	stateScoreboard
)

// SessionModel manages the full session flow: menu -> difficulty -> game -> menu,
// with the scoreboard reachable from the menu. Local play and SSH sessions
// both run it.
type SessionModel struct {
	settings   Settings
	width      int
	height     int
	state      sessionState
	variant    string
	menu       MenuModel
	difficulty DifficultyModel
	game       GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session that opens on the variant menu.
func NewSessionModel(settings Settings, width, height int) SessionModel {
	return SessionModel{
		settings: settings,
		width:    width,
		height:   height,
		state:    stateMenu,
		menu:     NewMenuModel(width, height),
	}
}

// NewPlaySession creates a session that goes straight to the given variant.
func NewPlaySession(settings Settings, variant string, width, height int) (SessionModel, error) {
	if !registry.Exists(variant) {
		return SessionModel{}, fmt.Errorf("tui: unknown variant %q", variant)
	}
	m := NewSessionModel(settings, width, height)
	m, _ = m.selectVariant(variant)
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.state == stateGame {
		return m.game.Init()
	}
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateDifficulty:
		return m.updateDifficulty(msg)
	case stateGame:
		return m.updateGame(msg)
	case stateScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.state = stateScoreboard
		m.scoreboard = NewScoreboardModel(m.settings.Scores, m.variant, m.width, m.height)
		return m, m.scoreboard.Init()
	case m.menu.Selected() != nil:
		return m.selectVariant(m.menu.Selected().VariantID)
	}
	return m, cmd
}

// selectVariant moves on to the difficulty picker, or straight into the
// game when the preset was fixed up front.
func (m SessionModel) selectVariant(id string) (SessionModel, tea.Cmd) {
	m.variant = id
	if m.settings.Preset != "" {
		return m.startGame(m.settings.Preset)
	}

	title := id
	if info, ok := registry.Lookup(id); ok {
		title = info.Title
	}
	m.state = stateDifficulty
	m.difficulty = NewDifficultyModel(title, m.width, m.height)
	return m, m.difficulty.Init()
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.difficulty.Update(msg)
	if dm, ok := newModel.(DifficultyModel); ok {
		m.difficulty = dm
	}

	if m.difficulty.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.difficulty.WantsBack() {
		return m.toMenu()
	}
	if preset, ok := m.difficulty.Selected(); ok {
		return m.startGame(preset)
	}
	return m, cmd
}

func (m SessionModel) startGame(preset config.DifficultyPreset) (SessionModel, tea.Cmd) {
	game, err := registry.Create(m.variant)
	if err != nil {
		// The menu only offers registered variants.
		m.settings.logger().Error("cannot create game", "variant", m.variant, "error", err)
		return m.toMenu()
	}

	m.state = stateGame
	m.game = NewGameModel(game, m.settings, preset, m.width, m.height)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.state = stateMenu
	m.menu = NewMenuModel(m.width, m.height)
	m.game = GameModel{}
	return m, nil
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateDifficulty:
		return m.difficulty.View()
	case stateGame:
		return m.game.View()
	case stateScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local Bubble Tea program for the session.
func Run(model SessionModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drags steer like swipes
	)

	_, err := p.Run()
	return err
}
