package core

// Color names what a screen cell shows. The terminal renderer maps each
// one to an ANSI 256-color code.
type Color uint8

// Cell colors by role.
const (
	ColorDefault Color = iota

	// Maze
	ColorWall
	ColorDot
	ColorPowerPellet

	// Actors
	ColorPlayer
	ColorBlinky
	ColorPinky
	ColorInky
	ColorClyde
	ColorFrightened
	ColorEyes

	// Chrome
	ColorHUD
	ColorNotice
	ColorDim
	ColorText

	// Overlays
	ColorVictory
	ColorDefeat
	ColorWarning
	ColorError
)
