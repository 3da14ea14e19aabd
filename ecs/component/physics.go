package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slide/controller"
)

// Physics holds the collision backend of the loaded level. One entity carries it.
type Physics struct {
	Caster controller.ShapeCaster
	// Space is drawn by the debug overlay; nil when the caster is not chipmunk backed.
	Space *cp.Space
}

var PhysicsComponent = NewComponent[Physics]()
