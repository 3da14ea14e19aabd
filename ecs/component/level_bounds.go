package component

import "github.com/go-gl/mathgl/mgl64"

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// Below reports whether y is further than margin under the level.
func (b *LevelBounds) Below(y, margin float64) bool {
	return y < b.Min.Y()-margin
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
