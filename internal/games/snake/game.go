// Package snake implements the grid snake engine: direction handling,
// movement, collision detection, food placement and scoring.
//
// The engine never owns a timer and never renders. Hosts call Tick at
// Snapshot().TickInterval, feed input through SetDirection and draw from
// Snapshot.
package snake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game holds and evolves one snake game.
// All exported methods are safe for concurrent use; they serialize on an
// internal mutex so Tick and SetDirection never interleave.
type Game struct {
	mu      sync.Mutex
	variant Variant

	cfg      core.RuntimeConfig
	rng      *rand.Rand
	tick     uint64
	score    int
	interval time.Duration
	status   core.Status
	cause    core.Cause

	// Snake state
	snake     []core.Cell // Head at index 0
	occupied  map[core.Cell]struct{}
	direction core.Direction // Travel direction of the last move
	nextDir   core.Direction // Applied at the next tick

	food    core.Cell
	hasFood bool
}

// New creates a game for the given variant. It stays in StatusNotStarted
// until Reset succeeds.
func New(v Variant) *Game {
	return &Game{
		variant: v,
		status:  core.StatusNotStarted,
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset starts a new game. The variant's overrides are applied to cfg
// before validation; an invalid configuration leaves the game untouched.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	cfg = g.variant.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.interval = cfg.TickInterval
	g.cause = core.CauseNone

	g.initSnake()
	g.status = core.StatusRunning
	if !g.placeFood() {
		// Validate guarantees a free cell; this only trips on a logic error.
		g.finish(core.StatusBoardFull, core.CauseFull)
	}
	return nil
}

// initSnake lays the initial snake along the start direction, centered on the board.
func (g *Game) initSnake() {
	b := g.cfg.Board
	n := g.cfg.InitialLength
	dir := g.cfg.StartDirection

	var head core.Cell
	switch dir {
	case core.DirRight:
		head = core.Cell{X: (b.Cols-n)/2 + n - 1, Y: b.Rows / 2}
	case core.DirLeft:
		head = core.Cell{X: (b.Cols - n) / 2, Y: b.Rows / 2}
	case core.DirDown:
		head = core.Cell{X: b.Cols / 2, Y: (b.Rows-n)/2 + n - 1}
	case core.DirUp:
		head = core.Cell{X: b.Cols / 2, Y: (b.Rows - n) / 2}
	}

	back := dir.Opposite().Delta()
	g.snake = make([]core.Cell, 0, n+1)
	g.occupied = make(map[core.Cell]struct{}, n+1)
	cell := head
	for range n {
		g.snake = append(g.snake, cell)
		g.occupied[cell] = struct{}{}
		cell = cell.Add(back)
	}

	g.direction = dir
	g.nextDir = dir
}

// SetDirection requests a direction for the next tick.
// Requests are ignored when the game is not running, when d is not a known
// direction, or when d reverses the current travel direction. Between two
// ticks the last accepted request wins.
func (g *Game) SetDirection(d core.Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != core.StatusRunning || !d.Valid() {
		return
	}
	if d.IsOpposite(g.direction) {
		return
	}
	g.nextDir = d
}

// Tick advances the simulation exactly one step.
func (g *Game) Tick() core.TickResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != core.StatusRunning {
		return core.TickResult{Outcome: core.OutcomeIdle, Snapshot: g.snapshot()}
	}

	g.tick++
	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head.Add(g.direction.Delta())

	switch g.cfg.Boundary {
	case core.BoundaryWrap:
		newHead = g.cfg.Board.Wrap(newHead)
	default:
		if !g.cfg.Board.Contains(newHead) {
			g.finish(core.StatusGameOver, core.CauseWall)
			return core.TickResult{Outcome: core.OutcomeGameOver, Snapshot: g.snapshot()}
		}
	}

	eating := g.hasFood && newHead == g.food
	tail := g.snake[len(g.snake)-1]

	// The tail vacates this step unless the snake grows.
	if _, hit := g.occupied[newHead]; hit && (eating || newHead != tail) {
		g.finish(core.StatusGameOver, core.CauseSelf)
		return core.TickResult{Outcome: core.OutcomeGameOver, Snapshot: g.snapshot()}
	}

	if !eating {
		g.snake = g.snake[:len(g.snake)-1]
		delete(g.occupied, tail)
	}
	g.snake = append([]core.Cell{newHead}, g.snake...)
	g.occupied[newHead] = struct{}{}

	if !eating {
		return core.TickResult{Outcome: core.OutcomeContinue, Snapshot: g.snapshot()}
	}

	g.score++
	result := core.TickResult{Outcome: core.OutcomeContinue, Ate: true}
	if next := g.cfg.Speed.Next(g.interval, g.score); next != g.interval {
		g.interval = next
		result.IntervalChanged = true
	}

	if !g.placeFood() {
		g.finish(core.StatusBoardFull, core.CauseFull)
		result.Outcome = core.OutcomeBoardFull
	}
	result.Snapshot = g.snapshot()
	return result
}

func (g *Game) finish(status core.Status, cause core.Cause) {
	g.status = status
	g.cause = cause
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() core.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() core.Snapshot {
	snake := make([]core.Cell, len(g.snake))
	copy(snake, g.snake)

	return core.Snapshot{
		Snake:        snake,
		Food:         g.food,
		HasFood:      g.hasFood,
		Score:        g.score,
		Running:      g.status == core.StatusRunning,
		Status:       g.status,
		Cause:        g.cause,
		Direction:    g.direction,
		TickInterval: g.interval,
		Tick:         g.tick,
		Board:        g.cfg.Board,
		CellSize:     g.cfg.CellSize,
	}
}

// Description returns a one-line summary of the variant's rules.
func (g *Game) Description() string {
	return g.variant.Description
}
