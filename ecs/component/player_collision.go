package component

import "github.com/milk9111/slide/controller"

// PlayerHits stores per-player collision state from the latest tick.
type PlayerHits struct {
	Ground *controller.Hit
	// LastMove is the resolver outcome of the latest move.
	LastMove controller.MoveResult
}

var PlayerHitsComponent = NewComponent[PlayerHits]()
