package core

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/automoto/partyroom/assets"
	"github.com/automoto/partyroom/shared/leveldata"
	"github.com/solarlune/resolv"
)

const tagSolid = "solid"

// Standing body size in pixels, used to check that a spawn point is clear.
const (
	spawnBoxW = 14
	spawnBoxH = 30
)

// ServerLevel holds the spawn data for the arena level. Spawns buried in
// solid geometry are dropped at load time.
type ServerLevel struct {
	Name   string
	Data   *leveldata.CollisionData
	spawns []leveldata.SpawnPoint
}

// NewServerLevel builds a resolv.Space from parsed collision data and keeps
// the spawn points a standing body fits into.
func NewServerLevel(name string, data *leveldata.CollisionData) *ServerLevel {
	space := resolv.NewSpace(data.MapWidth, data.MapHeight, data.TileWidth, data.TileHeight)
	for _, r := range data.SolidRects {
		if r.Kind == leveldata.KindPlatform {
			continue
		}
		space.Add(resolv.NewObject(r.X, r.Y, r.W, r.H, tagSolid))
	}

	var spawns []leveldata.SpawnPoint
	for _, sp := range data.SpawnPoints {
		if spawnBlocked(space, sp) {
			log.Printf("[server] Warning: level %s: spawn at (%.0f,%.0f) is inside a wall, skipping", name, sp.X, sp.Y)
			continue
		}
		spawns = append(spawns, sp)
	}

	log.Printf("[server] loaded level %s: %d solid tiles, %d/%d usable spawn points, %dx%d map",
		name, len(data.SolidRects), len(spawns), len(data.SpawnPoints), data.MapWidth, data.MapHeight)

	return &ServerLevel{Name: name, Data: data, spawns: spawns}
}

// spawnBlocked reports whether a body standing on sp overlaps a solid.
func spawnBlocked(space *resolv.Space, sp leveldata.SpawnPoint) bool {
	box := resolv.NewObject(sp.X-spawnBoxW/2, sp.Y-spawnBoxH, spawnBoxW, spawnBoxH)
	space.Add(box)
	defer space.Remove(box)

	check := box.Check(0, 0, tagSolid)
	if check == nil {
		return false
	}
	for _, obj := range check.Objects {
		if box.X < obj.X+obj.W && obj.X < box.X+box.W &&
			box.Y < obj.Y+obj.H && obj.Y < box.Y+box.H {
			return true
		}
	}
	return false
}

// SpawnFor picks the spawn point for the n-th arrival, round-robin.
func (l *ServerLevel) SpawnFor(n int) leveldata.SpawnPoint {
	if len(l.spawns) == 0 {
		return l.Data.SpawnFor(n)
	}
	if n < 0 {
		n = -n
	}
	return l.spawns[n%len(l.spawns)]
}

// LoadServerLevel reads name.tmx from levelsDir, or from the levels embedded
// in the client when levelsDir is empty.
func LoadServerLevel(levelsDir, name string) (*ServerLevel, error) {
	var fsys fs.FS = assets.LevelFS()
	file := path.Join("levels", name+".tmx")
	if levelsDir != "" {
		fsys = os.DirFS(levelsDir)
		file = name + ".tmx"
	}

	data, err := leveldata.LoadCollisionData(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return NewServerLevel(name, data), nil
}
