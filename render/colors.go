package render

import "github.com/gdamore/tcell/v2"

// RGB palette for terminal tiles (Tokyo Night)
var (
	RgbBorder    = tcell.NewRGBColor(86, 95, 137)   // Muted blue frame
	RgbPixelLit  = tcell.NewRGBColor(247, 118, 142) // Pink for the lit point
	RgbPixelDark = tcell.NewRGBColor(59, 66, 97)    // Dim grid dot
	RgbReadout   = tcell.NewRGBColor(0, 255, 255)   // Cyan screen index
	RgbFooter    = tcell.NewRGBColor(169, 177, 214) // Light gray status text
)

var (
	styleBorder = tcell.StyleDefault.Foreground(RgbBorder)
	styleLit    = tcell.StyleDefault.Foreground(RgbPixelLit)
	styleDark   = tcell.StyleDefault.Foreground(RgbPixelDark)
	styleNumber = tcell.StyleDefault.Foreground(RgbReadout).Bold(true)
	styleFooter = tcell.StyleDefault.Foreground(RgbFooter)
)

// StyleHelp is used by binaries for key hints drawn next to tiles
var StyleHelp = styleBorder

// StyleFocus marks the selected tile in multi-tile layouts
var StyleFocus = styleNumber
