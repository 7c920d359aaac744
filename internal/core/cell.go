// Package core provides the value types shared by the snake engine and its
// hosts. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package core

// Cell is a grid position measured in cells, not pixels.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by the given delta.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Pixels returns the grid-aligned pixel origin of the cell for a cell size g.
func (c Cell) Pixels(g int) (int, int) {
	return c.X * g, c.Y * g
}

// Direction is one of the four axis-aligned movement directions.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

// IsOpposite reports whether d and other point in exactly reverse directions.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && other.Valid() && d.Opposite() == other
}

// Delta returns the unit grid vector for the direction.
func (d Direction) Delta() Cell {
	switch d {
	case DirUp:
		return Cell{X: 0, Y: -1}
	case DirDown:
		return Cell{X: 0, Y: 1}
	case DirLeft:
		return Cell{X: -1, Y: 0}
	case DirRight:
		return Cell{X: 1, Y: 0}
	}
	return Cell{}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name produced by Direction.String back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right", "":
		return DirRight, true
	}
	return DirRight, false
}

// Board is the playing field size in cells. It is owned by the host.
type Board struct {
	Cols int
	Rows int
}

// Contains reports whether c lies inside the board.
func (b Board) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Cols && c.Y >= 0 && c.Y < b.Rows
}

// Wrap folds c back onto the board, treating each axis as a ring.
func (b Board) Wrap(c Cell) Cell {
	x := c.X % b.Cols
	if x < 0 {
		x += b.Cols
	}
	y := c.Y % b.Rows
	if y < 0 {
		y += b.Rows
	}
	return Cell{X: x, Y: y}
}

// Area returns the number of cells on the board.
func (b Board) Area() int {
	return b.Cols * b.Rows
}
