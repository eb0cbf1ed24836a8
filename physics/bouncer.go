package physics

import "github.com/lixenwraith/tile-wall/constants"

// Direction is the horizontal heading of the bouncing point
type Direction uint8

const (
	Rightward Direction = iota
	Leftward
)

// String implements fmt.Stringer
func (d Direction) String() string {
	if d == Leftward {
		return "left"
	}
	return "right"
}

// Body is the leader-owned animation state on the global canvas
// X spans [0, TileSize*groupSize-1], Y spans [0, FloorY]
type Body struct {
	X, Y      int
	VelocityY int
	Direction Direction
}

// NewBody returns the initial state: bottom-left corner, at rest, heading right
func NewBody() Body {
	return Body{X: 0, Y: constants.FloorY, Direction: Rightward}
}

// Step advances the body one tick on a canvas of groupSize tiles
// Horizontal motion is resolved before vertical integration, so a wall flip and its jump
// impulse land in the same tick. Returns true when a grounded wall jump fired
func (b *Body) Step(groupSize int) bool {
	maxX := constants.TileSize*max(groupSize, 1) - 1
	jumped := false

	switch b.Direction {
	case Rightward:
		if b.X < maxX {
			b.X++
		} else {
			b.Direction = Leftward
			jumped = b.jump()
		}
	case Leftward:
		if b.X > 0 {
			b.X--
		} else {
			b.Direction = Rightward
			jumped = b.jump()
		}
	}

	b.Y += b.VelocityY
	b.VelocityY += constants.Gravity

	if b.Y >= constants.FloorY {
		b.Y = constants.FloorY
		b.VelocityY = constants.FloorRebound
	} else if b.Y <= 0 {
		b.Y = 0
		b.VelocityY = constants.CeilingRebound
	}

	return jumped
}

// jump applies the upward impulse only when resting on the floor
func (b *Body) jump() bool {
	if b.Y != constants.FloorY {
		return false
	}
	b.VelocityY = constants.JumpImpulse
	return true
}
