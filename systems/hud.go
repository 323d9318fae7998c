package systems

import (
	"fmt"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/fonts"
	"github.com/automoto/partyroom/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 6
	hudLineHeight = 12
	hudPanelWidth = 170
)

// DrawHUD shows the room, its head count and the local character state in
// the top-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	roomEntry, ok := components.Room.First(ecs.World)
	if !ok {
		return
	}
	room := components.Room.Get(roomEntry)

	lines := []string{
		fmt.Sprintf("Room: %s", room.Name),
		fmt.Sprintf("Players: %d/%d", room.Players, room.MaxPlayers),
	}
	if player, ok := tags.Player.First(ecs.World); ok {
		lines = append(lines, fmt.Sprintf("State: %s", components.State.Get(player).CurrentState))
	}
	lines = append(lines, "L: leave room")

	vector.DrawFilledRect(screen,
		hudMargin/2, hudMargin/2,
		hudPanelWidth, float32(len(lines)*hudLineHeight+hudMargin),
		cfg.BlackOverlay, false)

	face := fonts.Small.Get()
	for i, line := range lines {
		text.Draw(screen, line, face, hudMargin, hudMargin+hudLineHeight*(i+1)-2, cfg.White)
	}
}
