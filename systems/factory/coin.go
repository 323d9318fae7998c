package factory

import (
	"github.com/automoto/partyroom/archetypes"
	"github.com/automoto/partyroom/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateCoin spawns a coin showing heads.
func CreateCoin(ecs *ecs.ECS) *donburi.Entry {
	coin := archetypes.Coin.Spawn(ecs)
	components.Coin.SetValue(coin, components.CoinData{
		Face:   components.CoinHead,
		Shown:  components.CoinHead,
		ScaleX: 1,
	})
	return coin
}
