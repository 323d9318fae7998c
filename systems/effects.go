package systems

import (
	"math"

	"github.com/automoto/partyroom/components"
	"github.com/automoto/partyroom/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects eases squash/stretch back to normal scale.
func UpdateEffects(ecs *ecs.ECS) {
	updateSquashStretchEffects(ecs)
}

// updateSquashStretchEffects lerps scale values toward target and removes when normalized
func updateSquashStretchEffects(ecs *ecs.ECS) {
	var toRemove []*donburi.Entry

	components.SquashStretch.Each(ecs.World, func(e *donburi.Entry) {
		ss := components.SquashStretch.Get(e)

		ss.ScaleX += (ss.TargetX - ss.ScaleX) * ss.LerpSpeed
		ss.ScaleY += (ss.TargetY - ss.ScaleY) * ss.LerpSpeed

		threshold := 0.01
		if math.Abs(ss.ScaleX-ss.TargetX) < threshold && math.Abs(ss.ScaleY-ss.TargetY) < threshold {
			toRemove = append(toRemove, e)
		}
	})

	for _, e := range toRemove {
		e.RemoveComponent(components.SquashStretch)
	}
}

// TriggerSquashStretch adds a squash/stretch effect to an entity
func TriggerSquashStretch(entry *donburi.Entry, scaleX, scaleY float64) {
	if entry.HasComponent(components.SquashStretch) {
		ss := components.SquashStretch.Get(entry)
		ss.ScaleX = scaleX
		ss.ScaleY = scaleY
		ss.TargetX = 1.0
		ss.TargetY = 1.0
		ss.LerpSpeed = config.SquashStretch.LerpSpeed
	} else {
		entry.AddComponent(components.SquashStretch)
		components.SquashStretch.Set(entry, &components.SquashStretchData{
			ScaleX:    scaleX,
			ScaleY:    scaleY,
			TargetX:   1.0,
			TargetY:   1.0,
			LerpSpeed: config.SquashStretch.LerpSpeed,
		})
	}
}

// squashScale returns the current draw scale of an entity.
func squashScale(entry *donburi.Entry) (float64, float64) {
	if !entry.HasComponent(components.SquashStretch) {
		return 1, 1
	}
	ss := components.SquashStretch.Get(entry)
	return ss.ScaleX, ss.ScaleY
}
