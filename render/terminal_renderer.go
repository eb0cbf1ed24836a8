package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tile-wall/constants"
)

// Layout of one tile on the terminal: bordered 5x5 grid, pixels two cells wide,
// followed by a readout row and an optional footer row
const (
	pixelWidth    = 2
	FrameWidth    = constants.TileSize*pixelWidth + 2
	FrameHeight   = constants.TileSize + 2
	SurfaceHeight = FrameHeight + 2
)

// TerminalSurface draws a Tile onto a tcell screen at a fixed origin
// Several surfaces may share one screen side by side
type TerminalSurface struct {
	*Tile

	screen  tcell.Screen
	originX int
	originY int
	label   string
	footer  func() string
}

// NewTerminalSurface creates a surface whose top-left frame corner is at (x, y)
func NewTerminalSurface(screen tcell.Screen, x, y int, label string) *TerminalSurface {
	return &TerminalSurface{
		Tile:    NewTile(),
		screen:  screen,
		originX: x,
		originY: y,
		label:   label,
	}
}

// SetFooter installs a callback whose text is drawn under the readout on every Flush
func (s *TerminalSurface) SetFooter(footer func() string) {
	s.footer = footer
}

// Flush implements Surface, drawing the tile and presenting the screen
func (s *TerminalSurface) Flush() {
	s.Draw()
	s.screen.Show()
	s.Tile.Flush()
}

// Draw writes the tile into the screen buffer without presenting it
func (s *TerminalSurface) Draw() {
	s.drawFrame()

	for y := 0; y < constants.TileSize; y++ {
		for x := 0; x < constants.TileSize; x++ {
			ch, style := '·', styleDark
			if s.Lit(x, y) {
				ch, style = '█', styleLit
			}
			sx := s.originX + 1 + x*pixelWidth
			sy := s.originY + 1 + y
			for i := 0; i < pixelWidth; i++ {
				s.screen.SetContent(sx+i, sy, ch, nil, style)
			}
		}
	}

	readout := ""
	if n, shown := s.Number(); shown {
		if n == NoNumber {
			readout = "-"
		} else {
			readout = fmt.Sprintf("%d", n)
		}
	}
	s.drawText(s.originY+FrameHeight, readout, styleNumber)

	if s.footer != nil {
		s.drawText(s.originY+FrameHeight+1, s.footer(), styleFooter)
	}
}

func (s *TerminalSurface) drawFrame() {
	right := s.originX + FrameWidth - 1
	bottom := s.originY + FrameHeight - 1

	for x := s.originX + 1; x < right; x++ {
		s.screen.SetContent(x, s.originY, '─', nil, styleBorder)
		s.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := s.originY + 1; y < bottom; y++ {
		s.screen.SetContent(s.originX, y, '│', nil, styleBorder)
		s.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	s.screen.SetContent(s.originX, s.originY, '┌', nil, styleBorder)
	s.screen.SetContent(right, s.originY, '┐', nil, styleBorder)
	s.screen.SetContent(s.originX, bottom, '└', nil, styleBorder)
	s.screen.SetContent(right, bottom, '┘', nil, styleBorder)

	// Label sits inside the top border
	for i, ch := range []rune(s.label) {
		if s.originX+1+i >= right {
			break
		}
		s.screen.SetContent(s.originX+1+i, s.originY, ch, nil, styleBorder)
	}
}

// drawText writes a single line clipped to the frame width, blanking the remainder
func (s *TerminalSurface) drawText(y int, text string, style tcell.Style) {
	runes := []rune(text)
	for i := 0; i < FrameWidth; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		s.screen.SetContent(s.originX+i, y, ch, nil, style)
	}
}
