package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	scoreboardRows   = 50 // Runs loaded per variant
	scoreboardChrome = 10 // Lines used by title, tabs, summary, borders and help
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	tableBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Top  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Top}, {k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "scroll")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "a", "shift+tab"), key.WithHelp("←/h", "prev variant")),
		Next: key.NewBinding(key.WithKeys("right", "l", "d", "tab"), key.WithHelp("→/l", "next variant")),
		Top:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one variant at a time with a
// summary of everything played on it.
type ScoreboardModel struct {
	variants []registry.GameInfo
	cursor   int
	store    Scores // May be nil
	entries  []storage.ScoreEntry
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the given variant.
// An unknown variant opens the first one.
func NewScoreboardModel(store Scores, variant string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	for i, v := range m.variants {
		if v.ID == variant {
			m.cursor = i
		}
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// Variant returns the ID of the variant being shown.
func (m ScoreboardModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

// newTable sizes the run table; the player column absorbs spare width.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Length", Width: 6},
		{Title: "Ended", Width: 12},
		{Title: "Player", Width: 10},
		{Title: "When", Width: 14},
	}
	used := 2 // Table border
	for _, c := range columns {
		used += c.Width + 2 // Cell padding
	}
	if spare := m.width - used; spare > 0 {
		columns[4].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("10")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the runs and summary of the current variant.
func (m *ScoreboardModel) load() {
	m.entries, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.Variant()
		m.entries, m.loadErr = m.store.TopScores(id, scoreboardRows)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Length),
			endedText(e),
			player,
			humanize.Time(e.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// endedText describes how a stored run finished.
func endedText(e storage.ScoreEntry) string {
	if core.Status(e.Outcome) == core.StatusBoardFull {
		return "board full"
	}
	if e.Cause == "" {
		return "-"
	}
	return causeText(core.Cause(e.Cause))
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.variants) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.variants)) % len(m.variants)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render("HIGH SCORES")))
	b.WriteString("\n\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, summaryStyle.Render(m.summary())))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(emptyStyle.Render("Could not load scores: " + m.loadErr.Error()))
	case len(m.entries) == 0:
		b.WriteString(emptyStyle.Render("No runs recorded yet. Finish a game with a score to get on the board."))
	default:
		b.WriteString(tableBoxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the variant row, falling back to "< Title >" when the row
// does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return centerText("No variants registered", m.width)
	}

	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			parts[i] = activeTabStyle.Render(v.Title)
		} else {
			parts[i] = tabStyle.Render(v.Title)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(row) > m.width {
		row = activeTabStyle.Render("< " + m.variants[m.cursor].Title + " >")
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row)
}

// summary describes the variant's totals in one line.
func (m ScoreboardModel) summary() string {
	if len(m.variants) == 0 {
		return ""
	}
	desc := m.variants[m.cursor].Description
	if m.stats == nil || m.stats.GamesCount == 0 {
		return desc
	}
	return fmt.Sprintf("%s  |  best %d  longest %d  avg %.1f over %s runs  |  last played %s",
		desc,
		m.stats.HighScore,
		m.stats.BestLength,
		m.stats.AvgScore,
		humanize.Comma(int64(m.stats.GamesCount)),
		humanize.Time(m.stats.LastPlayed),
	)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
