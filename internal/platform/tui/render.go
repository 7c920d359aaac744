package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Rows reserved around the board: HUD line, top border, bottom border, footer.
const (
	hudRows    = 1
	footerRows = 1
	borderSize = 1
)

// Layout places board cells on the terminal. A board cell is drawn as
// CellW columns by CellH rows; terminal glyphs are about twice as tall as
// wide, so columns are doubled to keep cells square.
type Layout struct {
	OriginX, OriginY int // Terminal position of board cell (0, 0)
	CellW, CellH     int
	Board            core.Board
}

// cellExtent returns the terminal size of one board cell for a cell size.
func cellExtent(cellSize int) (w, h int) {
	cellSize = max(cellSize, 1)
	return 2 * cellSize, cellSize
}

// NewLayout centers the board horizontally below the HUD.
// The second result is false when the board does not fit the screen.
func NewLayout(b core.Board, cellSize, screenW, screenH int) (Layout, bool) {
	cw, ch := cellExtent(cellSize)
	frameW := b.Cols*cw + 2*borderSize
	frameH := b.Rows*ch + 2*borderSize

	l := Layout{
		OriginX: max((screenW-frameW)/2, 0) + borderSize,
		OriginY: hudRows + borderSize,
		CellW:   cw,
		CellH:   ch,
		Board:   b,
	}
	fits := frameW <= screenW && frameH+hudRows+footerRows <= screenH
	return l, fits
}

// FitBoard returns the largest board no bigger than b that fits the screen.
// Unknown screen sizes (zero or negative) leave b unchanged.
func FitBoard(b core.Board, cellSize, screenW, screenH int) core.Board {
	if screenW <= 0 || screenH <= 0 {
		return b
	}
	cw, ch := cellExtent(cellSize)
	maxCols := (screenW - 2*borderSize) / cw
	maxRows := (screenH - 2*borderSize - hudRows - footerRows) / ch
	return core.Board{
		Cols: max(min(b.Cols, maxCols), 0),
		Rows: max(min(b.Rows, maxRows), 0),
	}
}

// CellAt converts a terminal position to a board cell.
func (l Layout) CellAt(x, y int) (core.Cell, bool) {
	if x < l.OriginX || y < l.OriginY {
		return core.Cell{}, false
	}
	c := core.Cell{X: (x - l.OriginX) / l.CellW, Y: (y - l.OriginY) / l.CellH}
	return c, l.Board.Contains(c)
}

// fill paints one board cell.
func (l Layout) fill(s *core.Screen, c core.Cell, r rune, color core.Color) {
	px, py := c.Pixels(l.CellH)
	x0, y0 := l.OriginX+px*2, l.OriginY+py
	for dy := range l.CellH {
		for dx := range l.CellW {
			s.Set(x0+dx, y0+dy, r, color)
		}
	}
}

// HUD carries the host-side information drawn around the board.
type HUD struct {
	Title     string
	HighScore int
	Paused    bool
	Notice    string // Transient message, e.g. a speed-up
	Err       error  // Reset failure; replaces the board
}

// DrawGame renders a snapshot and its HUD into the screen buffer.
func DrawGame(s *core.Screen, snap core.Snapshot, hud HUD) {
	s.Clear()

	if hud.Err != nil {
		drawMessage(s, s.Height()/2, []string{"Cannot start game", hud.Err.Error(), "", "B: menu  Q: quit"}, core.ColorRed)
		return
	}

	l, fits := NewLayout(snap.Board, snap.CellSize, s.Width(), s.Height())
	if !fits {
		cw, ch := cellExtent(snap.CellSize)
		need := fmt.Sprintf("need %dx%d, have %dx%d",
			snap.Board.Cols*cw+2*borderSize,
			snap.Board.Rows*ch+2*borderSize+hudRows+footerRows,
			s.Width(), s.Height())
		drawMessage(s, s.Height()/2, []string{"Terminal too small", need}, core.ColorYellow)
		return
	}

	drawHUD(s, snap, hud)
	s.DrawBox(l.OriginX-borderSize, l.OriginY-borderSize,
		snap.Board.Cols*l.CellW+2*borderSize, snap.Board.Rows*l.CellH+2*borderSize, core.ColorGray)

	if snap.HasFood {
		l.fill(s, snap.Food, '◆', core.ColorRed)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
			if snap.Status == core.StatusGameOver {
				color = core.ColorRed
			}
		}
		l.fill(s, snap.Snake[i], '█', color)
	}

	mid := l.OriginY + snap.Board.Rows*l.CellH/2
	switch {
	case snap.Status == core.StatusGameOver:
		drawMessage(s, mid-1, []string{" GAME OVER ", " " + causeText(snap.Cause) + " "}, core.ColorYellow)
	case snap.Status == core.StatusBoardFull:
		drawMessage(s, mid-1, []string{" BOARD FULL ", " you win! "}, core.ColorYellow)
	case hud.Paused:
		drawMessage(s, mid, []string{" PAUSED "}, core.ColorYellow)
	}

	s.DrawTextCentered(s.Height()-1, footerText(snap, hud), core.ColorGray)
}

func drawHUD(s *core.Screen, snap core.Snapshot, hud HUD) {
	left := fmt.Sprintf(" %s  Score: %d  High: %d", hud.Title, snap.Score, max(hud.HighScore, snap.Score))
	s.DrawText(0, 0, left, core.ColorWhite)

	right := fmt.Sprintf("Length: %d  Speed: %s ", len(snap.Snake), snap.TickInterval)
	if hud.Notice != "" {
		right = hud.Notice + "  " + right
	}
	// Narrow screens keep only the score side.
	if x := s.Width() - len([]rune(right)); x > len([]rune(left)) {
		s.DrawText(x, 0, right, core.ColorWhite)
	}
}

func drawMessage(s *core.Screen, y int, lines []string, color core.Color) {
	for i, line := range lines {
		s.DrawTextCentered(y+i, line, color)
	}
}

func footerText(snap core.Snapshot, hud HUD) string {
	switch {
	case snap.Status.Finished():
		return "R: restart  B: menu  Q: quit"
	case hud.Paused:
		return "P: resume  R: restart  B: menu  Q: quit"
	default:
		return "Arrows/WASD/HJKL: steer  P: pause  Q: quit"
	}
}

func causeText(c core.Cause) string {
	switch c {
	case core.CauseWall:
		return "hit the wall"
	case core.CauseSelf:
		return "bit yourself"
	default:
		return string(c)
	}
}
