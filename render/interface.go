package render

// Surface is a unit's local pixel grid plus its numeric status readout
// Callers bounds-check coordinates before Plot; implementations ignore anything outside the tile
type Surface interface {
	Plot(x, y int)
	Clear()
	ShowNumber(n int)
	HideNumber()
	// Flush presents pending changes
	Flush()
}
