package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// noticeTicks is how long a transient HUD notice stays visible.
const noticeTicks = 15

// GameModel is the Bubble Tea model that hosts one snake game.
// It owns the timer: every tick schedules the next one at the snapshot's
// current interval.
type GameModel struct {
	game     registry.Game
	settings Settings
	preset   config.DifficultyPreset
	screen   *core.Screen
	keys     *KeyMapper
	width    int
	height   int

	snap      core.Snapshot
	gen       uint64 // Current timer generation
	paused    bool
	err       error // Reset failure
	runID     string
	saved     bool
	highScore int
	notice    string
	noticeFor int

	// Mouse drag start, in terminal cells
	dragging     bool
	dragX, dragY int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model and starts the first game.
func NewGameModel(game registry.Game, settings Settings, preset config.DifficultyPreset, width, height int) GameModel {
	m := GameModel{
		game:     game,
		settings: settings,
		preset:   preset,
		screen:   core.NewScreen(width, height),
		keys:     NewKeyMapper(),
		width:    width,
		height:   height,
	}
	m.start()
	return m
}

// start resets the engine for a new run.
func (m *GameModel) start() {
	m.gen = nextGen()
	m.paused = false
	m.saved = false
	m.notice = ""
	m.runID = uuid.NewString()

	rc := m.settings.Runtime(m.preset, m.width, m.height)
	if err := m.game.Reset(rc); err != nil {
		m.err = err
		m.settings.logger().Error("cannot start game", "variant", m.game.ID(), "error", err)
		return
	}
	m.err = nil
	m.snap = m.game.Snapshot()

	if m.settings.Scores != nil {
		if high, err := m.settings.Scores.HighScore(m.game.ID()); err == nil {
			m.highScore = high
		}
	}

	m.settings.logger().Info("game started",
		"variant", m.game.ID(),
		"run", m.runID,
		"board", fmt.Sprintf("%dx%d", rc.Board.Cols, rc.Board.Rows),
		"interval", rc.TickInterval,
		"seed", rc.Seed,
	)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m GameModel) nextTick() tea.Cmd {
	if m.err != nil || m.paused || !m.snap.Running {
		return nil
	}
	return tickCmd(m.snap.TickInterval, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		// Resizing never resets a running game; the board size is fixed per run.
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m.handleAction(action)
}

// handleAction applies a semantic action from any input source.
func (m GameModel) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	finished := m.err != nil || m.snap.Status.Finished()

	switch action {
	case core.ActionBack:
		if finished || m.paused {
			m.gen = nextGen()
			m.backToMenu = true
		}
		return m, nil

	case core.ActionRestart:
		if finished || m.paused {
			m.start()
			return m, m.nextTick()
		}
		return m, nil

	case core.ActionPause:
		if finished {
			return m, nil
		}
		m.paused = !m.paused
		m.gen = nextGen() // Drop the tick already in flight
		return m, m.nextTick()
	}

	if dir, ok := action.Direction(); ok && !m.paused {
		m.game.SetDirection(dir)
	}
	return m, nil
}

// handleMouse treats a left-button drag as a swipe. A click on the board
// steers the head toward the clicked cell.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		action := m.clickAction(msg.X, msg.Y)
		if msg.X != m.dragX || msg.Y != m.dragY {
			cw, ch := cellExtent(m.snap.CellSize)
			action = core.SwipeAction((msg.X-m.dragX)/cw, (msg.Y-m.dragY)/ch)
		}
		if action != core.ActionNone {
			return m.handleAction(action)
		}
	}
	return m, nil
}

// clickAction steers along the dominant axis from the head to the board
// cell under (x, y). Clicks off the board, on the head, or exactly
// diagonal to it do nothing.
func (m GameModel) clickAction(x, y int) core.Action {
	l, fits := NewLayout(m.snap.Board, m.snap.CellSize, m.width, m.height)
	if !fits || len(m.snap.Snake) == 0 {
		return core.ActionNone
	}
	target, ok := l.CellAt(x, y)
	if !ok {
		return core.ActionNone
	}

	head := m.snap.Head()
	dx, dy := target.X-head.X, target.Y-head.Y
	switch {
	case abs(dx) > abs(dy) && dx > 0:
		return core.ActionRight
	case abs(dx) > abs(dy):
		return core.ActionLeft
	case abs(dy) > abs(dx) && dy > 0:
		return core.ActionDown
	case abs(dy) > abs(dx):
		return core.ActionUp
	}
	return core.ActionNone
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// handleTick advances the engine and schedules the next tick.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused || m.err != nil {
		return m, nil
	}

	result := m.game.Tick()
	m.snap = result.Snapshot

	if m.noticeFor > 0 {
		m.noticeFor--
		if m.noticeFor == 0 {
			m.notice = ""
		}
	}
	if result.IntervalChanged {
		m.notice = "SPEED UP"
		m.noticeFor = noticeTicks
		m.settings.logger().Debug("interval changed", "run", m.runID, "interval", m.snap.TickInterval)
	}

	switch result.Outcome {
	case core.OutcomeGameOver, core.OutcomeBoardFull:
		m.finish(result.Outcome)
		return m, nil
	case core.OutcomeIdle:
		return m, nil
	}
	return m, m.nextTick()
}

// finish records the run once.
func (m *GameModel) finish(outcome core.Outcome) {
	m.notice, m.noticeFor = "", 0

	logger := m.settings.logger()
	logger.Info("game over",
		"variant", m.game.ID(),
		"run", m.runID,
		"outcome", outcome,
		"cause", m.snap.Cause,
		"score", m.snap.Score,
		"length", len(m.snap.Snake),
		"ticks", m.snap.Tick,
	)

	if m.saved || m.snap.Score == 0 || m.settings.Scores == nil {
		return
	}
	m.saved = true

	run := storage.Run{
		RunID:   m.runID,
		Variant: m.game.ID(),
		Player:  m.settings.Player,
		Score:   m.snap.Score,
		Length:  len(m.snap.Snake),
		Ticks:   m.snap.Tick,
		Outcome: string(m.snap.Status),
		Cause:   string(m.snap.Cause),
	}
	if _, _, err := m.settings.Scores.SaveScore(run); err != nil {
		logger.Warn("could not save score", "run", m.runID, "error", err)
		return
	}

	if m.snap.Score > m.highScore {
		m.notice = "NEW HIGH SCORE"
		m.highScore = m.snap.Score
	} else if rank, err := m.settings.Scores.Rank(m.game.ID(), m.snap.Score); err == nil {
		m.notice = fmt.Sprintf("RANK #%d", rank)
	}
}

// saveScreenshot saves the current screen to ~/.snake/screenshots.
func (m *GameModel) saveScreenshot() {
	DrawGame(m.screen, m.snap, m.hud())

	dir := filepath.Join(config.Dir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.settings.logger().Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.settings.logger().Warn("could not save screenshot", "error", err)
		return
	}
	m.settings.logger().Info("screenshot saved", "path", path)
}

func (m GameModel) hud() HUD {
	return HUD{
		Title:     m.game.Title(),
		HighScore: m.highScore,
		Paused:    m.paused,
		Notice:    m.notice,
		Err:       m.err,
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	DrawGame(m.screen, m.snap, m.hud())
	return RenderScreen(m.screen)
}

// Snapshot returns the last state the model rendered.
func (m GameModel) Snapshot() core.Snapshot {
	return m.snap
}

// Paused reports whether the game is paused.
func (m GameModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
