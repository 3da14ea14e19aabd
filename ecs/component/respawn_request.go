package component

// RespawnRequest is a marker component indicating a player should be
// teleported to their safe respawn position.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
