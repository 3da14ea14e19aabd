package component

// LevelLoaded is added once the level geometry and player are in place so the
// simulation can leave the loading state.
type LevelLoaded struct {
	Name string
}

var LevelLoadedComponent = NewComponent[LevelLoaded]()
