package render

import (
	"strings"
	"sync"

	"github.com/lixenwraith/tile-wall/constants"
)

// NoNumber is the readout value meaning "no address yet"
const NoNumber = -1

// Tile is an in-memory 5x5 surface
// Safe for one writer and concurrent readers (terminal redraw, tests)
type Tile struct {
	mu          sync.RWMutex
	lit         [constants.TileSize][constants.TileSize]bool
	number      int
	numberShown bool
	flushes     int
}

// NewTile returns a dark tile with no readout
func NewTile() *Tile {
	return &Tile{number: NoNumber}
}

// Plot implements Surface
func (t *Tile) Plot(x, y int) {
	if !inTile(x, y) {
		return
	}
	t.mu.Lock()
	t.lit[y][x] = true
	t.mu.Unlock()
}

// Clear implements Surface
func (t *Tile) Clear() {
	t.mu.Lock()
	t.lit = [constants.TileSize][constants.TileSize]bool{}
	t.mu.Unlock()
}

// ShowNumber implements Surface
func (t *Tile) ShowNumber(n int) {
	t.mu.Lock()
	t.number = n
	t.numberShown = true
	t.mu.Unlock()
}

// HideNumber implements Surface
func (t *Tile) HideNumber() {
	t.mu.Lock()
	t.numberShown = false
	t.mu.Unlock()
}

// Flush implements Surface
func (t *Tile) Flush() {
	t.mu.Lock()
	t.flushes++
	t.mu.Unlock()
}

// Lit reports whether the pixel at (x, y) is on
func (t *Tile) Lit(x, y int) bool {
	if !inTile(x, y) {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lit[y][x]
}

// LitPixels returns every lit pixel in row-major order
func (t *Tile) LitPixels() [][2]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out [][2]int
	for y := range t.lit {
		for x := range t.lit[y] {
			if t.lit[y][x] {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// Number returns the readout and whether it is visible
func (t *Tile) Number() (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.number, t.numberShown
}

// Flushes returns how many times Flush was called
func (t *Tile) Flushes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.flushes
}

// String draws the tile as five rows of '#' and '.'
func (t *Tile) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	for y := range t.lit {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range t.lit[y] {
			if t.lit[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func inTile(x, y int) bool {
	return x >= 0 && x <= constants.TileMax && y >= 0 && y <= constants.TileMax
}
