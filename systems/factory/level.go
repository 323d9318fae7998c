package factory

import (
	"github.com/automoto/partyroom/archetypes"
	"github.com/automoto/partyroom/components"
	"github.com/automoto/partyroom/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level entity, its collision space and one collider
// per solid rectangle.
func CreateLevel(ecs *ecs.ECS, name string, data *leveldata.CollisionData) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(level, components.LevelData{Name: name, Data: data})

	CreateSpace(ecs, data.MapWidth, data.MapHeight, data.TileWidth, data.TileHeight)

	for _, r := range data.SolidRects {
		switch r.Kind {
		case leveldata.KindPlatform:
			CreatePlatform(ecs, r.X, r.Y, r.W, r.H)
		default:
			CreateWall(ecs, r.X, r.Y, r.W, r.H)
		}
	}

	return level
}
