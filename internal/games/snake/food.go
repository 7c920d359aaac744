package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// PlaceFood moves the food to a uniformly random free cell.
// It returns false, leaving the game without food, when the snake covers
// the whole board. It does nothing before the first Reset.
func (g *Game) PlaceFood() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rng == nil {
		return false
	}
	return g.placeFood()
}

// placeFood enumerates the free cells instead of rejection sampling so it
// always terminates, however full the board is.
func (g *Game) placeFood() bool {
	free := g.freeCells()
	if len(free) == 0 {
		g.hasFood = false
		return false
	}

	g.food = free[g.rng.Intn(len(free))]
	g.hasFood = true
	return true
}

// freeCells collects every board cell the snake does not occupy, row-major.
func (g *Game) freeCells() []core.Cell {
	b := g.cfg.Board
	free := make([]core.Cell, 0, b.Area()-len(g.occupied))
	for y := range b.Rows {
		for x := range b.Cols {
			c := core.Cell{X: x, Y: y}
			if _, taken := g.occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	return free
}
