package render

import "github.com/lixenwraith/tile-wall/constants"

// MapToLocal converts a global canvas point to the tile at screenIndex
// The y component is clamped into the tile; ok is false when the point lies in another tile
func MapToLocal(globalX, globalY, screenIndex int) (x, y int, ok bool) {
	x = globalX - constants.TileSize*screenIndex
	y = min(constants.TileMax, max(0, globalY))
	return x, y, x >= 0 && x <= constants.TileMax
}

// TileSpan returns the inclusive global x range covered by screenIndex
func TileSpan(screenIndex int) (first, last int) {
	first = constants.TileSize * screenIndex
	return first, first + constants.TileMax
}
