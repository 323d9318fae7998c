// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv, only plain data.
package leveldata

// Tile kinds read from the tileset "kind" property.
const (
	KindSolid    = "solid"
	KindPlatform = "platform"
)

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	SolidRects  []SolidRect
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
	TileWidth   int
	TileHeight  int
}

// SolidRect represents a solid collision tile.
type SolidRect struct {
	X, Y, W, H float64
	Kind       string // KindSolid or KindPlatform
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// SpawnFor returns the spawn point for the n-th arrival, cycling through the
// level's spawns. A level without spawns yields the top centre of the map.
func (d *CollisionData) SpawnFor(n int) SpawnPoint {
	if len(d.SpawnPoints) == 0 {
		return SpawnPoint{X: float64(d.MapWidth) / 2, Y: float64(d.TileHeight)}
	}
	if n < 0 {
		n = -n
	}
	return d.SpawnPoints[n%len(d.SpawnPoints)]
}
