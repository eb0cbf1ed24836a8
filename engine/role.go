package engine

import (
	"fmt"

	"github.com/lixenwraith/tile-wall/physics"
)

// Role is a unit's place in the wall: Unassigned, Leader or Follower
// Only the variant that owns a field carries it; a Follower has no group size or body
type Role interface {
	isRole()
	String() string
}

// Unassigned is the initial role, polling for an address
type Unassigned struct{}

// Leader owns the group size counter and the authoritative animation state
type Leader struct {
	// GroupSize counts the leader plus every index handed out so far
	GroupSize int
	Body      physics.Body
	Animating bool
}

// Follower renders the slice of the canvas at Index
type Follower struct {
	Index int
}

func (Unassigned) isRole() {}
func (Leader) isRole()     {}
func (Follower) isRole()   {}

func (Unassigned) String() string { return "unassigned" }
func (Leader) String() string     { return "leader" }
func (f Follower) String() string { return fmt.Sprintf("follower#%d", f.Index) }

// ScreenIndex returns the tile position for roles that have one
func ScreenIndex(r Role) (int, bool) {
	switch r := r.(type) {
	case Leader:
		return 0, true
	case Follower:
		return r.Index, true
	default:
		return 0, false
	}
}
