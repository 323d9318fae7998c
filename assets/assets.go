package assets

import (
	"embed"
	"fmt"

	"github.com/automoto/partyroom/shared/leveldata"
)

// DefaultLevel is the arena used by the PVP room.
const DefaultLevel = "arena"

var (
	//go:embed all:levels
	assetFS embed.FS
)

// LevelFS exposes the embedded levels. The server falls back to it when no
// levels directory is given.
func LevelFS() embed.FS {
	return assetFS
}

// LoadLevel parses an embedded TMX level by stem name.
func LoadLevel(name string) (*leveldata.CollisionData, error) {
	data, err := leveldata.LoadCollisionData(assetFS, "levels/"+name+".tmx")
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return data, nil
}

// ListLevelNames returns the stem names of all embedded levels.
func ListLevelNames() ([]string, error) {
	_, names, err := leveldata.LoadAllLevels(assetFS, "levels")
	return names, err
}
