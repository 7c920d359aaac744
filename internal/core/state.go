package core

import "time"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusRunning    Status = "running"
	StatusGameOver   Status = "game_over"
	StatusBoardFull  Status = "board_full"
)

// Finished reports whether the game reached a terminal state.
func (s Status) Finished() bool {
	return s == StatusGameOver || s == StatusBoardFull
}

// Cause explains why a game ended.
type Cause string

const (
	CauseNone Cause = ""
	CauseWall Cause = "wall"
	CauseSelf Cause = "self"
	CauseFull Cause = "board_full"
)

// Outcome classifies the result of one tick.
type Outcome int

const (
	OutcomeIdle Outcome = iota // Game not running; nothing happened
	OutcomeContinue
	OutcomeGameOver
	OutcomeBoardFull
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeContinue:
		return "continue"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of a game for renderers and score displays.
type Snapshot struct {
	Snake        []Cell // Head first
	Food         Cell
	HasFood      bool
	Score        int
	Running      bool
	Status       Status
	Cause        Cause
	Direction    Direction // Current travel direction
	TickInterval time.Duration
	Tick         uint64
	Board        Board
	CellSize     int
}

// Head returns the first snake cell.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// TickResult is returned by every Tick.
type TickResult struct {
	Outcome Outcome
	Ate     bool
	// IntervalChanged is set when scoring changed the desired tick interval.
	// The host must reschedule its timer to Snapshot.TickInterval.
	IntervalChanged bool
	Snapshot        Snapshot
}

// Score is a convenience accessor for the score after the tick.
func (r TickResult) Score() int {
	return r.Snapshot.Score
}
