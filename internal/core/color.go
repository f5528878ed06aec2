package core

// Color is a semantic foreground color for a screen cell. The front-end maps
// each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBorder
	ColorSnakeHead
	ColorSnakeBody
	ColorSnakeTail
	ColorFood
	ColorBonus
	ColorHUD
	ColorMuted
	ColorAlert
)
