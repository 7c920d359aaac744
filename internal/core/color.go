package core

// Color is a foreground color for a screen cell.
// Values map to ANSI colors in the terminal renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorRed
	ColorYellow
	ColorGray
	ColorWhite
)
