package core

import "time"

// Boundary selects what happens when the head leaves the board.
type Boundary string

const (
	// BoundaryClamp treats the board edge as a wall.
	BoundaryClamp Boundary = "clamp"
	// BoundaryWrap moves the head to the opposite edge.
	BoundaryWrap Boundary = "wrap"
)

// SpeedPolicy shortens the tick interval as the score grows.
// Every Every points the interval drops by Step, never below Floor.
type SpeedPolicy struct {
	Enabled bool
	Every   int
	Step    time.Duration
	Floor   time.Duration
}

// Next returns the interval to use after reaching score, given the current one.
func (p SpeedPolicy) Next(current time.Duration, score int) time.Duration {
	if !p.Enabled || p.Every <= 0 || score <= 0 || score%p.Every != 0 {
		return current
	}
	next := current - p.Step
	if next < p.Floor {
		next = p.Floor
	}
	return next
}

// RuntimeConfig contains everything a game needs at Reset.
type RuntimeConfig struct {
	Board          Board
	CellSize       int           // Side of one grid cell in host units (pixels, terminal columns)
	TickInterval   time.Duration // Initial time between ticks
	Boundary       Boundary
	Speed          SpeedPolicy
	StartDirection Direction
	InitialLength  int
	Seed           int64 // RNG seed for deterministic food placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Board:          Board{Cols: 20, Rows: 20},
		CellSize:       1,
		TickInterval:   100 * time.Millisecond,
		Boundary:       BoundaryClamp,
		StartDirection: DirRight,
		InitialLength:  3,
		Speed: SpeedPolicy{
			Enabled: false,
			Every:   5,
			Step:    10 * time.Millisecond,
			Floor:   50 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration can host a game.
// The board must fit the initial snake along its start axis and leave
// at least one cell free for food.
func (c RuntimeConfig) Validate() error {
	if c.CellSize <= 0 {
		return configErrorf("cell size", "must be positive, got %d", c.CellSize)
	}
	if c.Board.Cols <= 0 || c.Board.Rows <= 0 {
		return configErrorf("board", "must be at least 1x1, got %dx%d", c.Board.Cols, c.Board.Rows)
	}
	if c.TickInterval <= 0 {
		return configErrorf("tick interval", "must be positive, got %s", c.TickInterval)
	}
	if c.InitialLength < 1 {
		return configErrorf("initial length", "must be at least 1, got %d", c.InitialLength)
	}
	if !c.StartDirection.Valid() {
		return configErrorf("start direction", "unknown direction %d", c.StartDirection)
	}
	switch c.Boundary {
	case BoundaryClamp, BoundaryWrap:
	default:
		return configErrorf("boundary", "unknown policy %q", c.Boundary)
	}

	axis := c.Board.Cols
	if c.StartDirection == DirUp || c.StartDirection == DirDown {
		axis = c.Board.Rows
	}
	if axis < c.InitialLength {
		return configErrorf("board", "%dx%d cannot fit a snake of length %d moving %s",
			c.Board.Cols, c.Board.Rows, c.InitialLength, c.StartDirection)
	}
	if c.Board.Area() <= c.InitialLength {
		return configErrorf("board", "%dx%d leaves no room for food", c.Board.Cols, c.Board.Rows)
	}

	if c.Speed.Enabled {
		if c.Speed.Every <= 0 {
			return configErrorf("speed.every", "must be positive, got %d", c.Speed.Every)
		}
		if c.Speed.Step <= 0 {
			return configErrorf("speed.step", "must be positive, got %s", c.Speed.Step)
		}
		if c.Speed.Floor <= 0 || c.Speed.Floor > c.TickInterval {
			return configErrorf("speed.floor", "must be in (0, %s], got %s", c.TickInterval, c.Speed.Floor)
		}
	}
	return nil
}
