package core

import "strconv"

// Color is a cell foreground color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// ansi256 maps palette entries to ANSI 256-color codes.
var ansi256 = [...]int{
	ColorRed:     9,
	ColorGreen:   10,
	ColorYellow:  11,
	ColorBlue:    12,
	ColorMagenta: 13,
	ColorCyan:    14,
	ColorWhite:   15,
	ColorOrange:  208,
	ColorGray:    245,
}

// ANSI returns the 256-color code as a string, or "" for the terminal default.
func (c Color) ANSI() string {
	if c == ColorDefault || int(c) >= len(ansi256) {
		return ""
	}
	return strconv.Itoa(ansi256[c])
}
