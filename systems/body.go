package systems

import (
	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/gamemath"
	"github.com/automoto/partyroom/shared/motion"
	"github.com/automoto/partyroom/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Collision layers understood by ResolvPhysics.
const (
	MaskGround  motion.Mask = 1 << 0
	MaskPlayers motion.Mask = 1 << 1
)

const contactEpsilon = 0.001

var maskTags = []struct {
	mask motion.Mask
	tags []string
}{
	{MaskGround, []string{tags.ResolvSolid, tags.ResolvPlatform}},
	{MaskPlayers, []string{tags.ResolvPlayer, tags.ResolvTorso}},
}

func tagsForMask(mask motion.Mask) []string {
	var out []string
	for _, m := range maskTags {
		if mask.Has(m.mask) {
			out = append(out, m.tags...)
		}
	}
	return out
}

func hasAnyTag(obj *resolv.Object, tagList []string) bool {
	for _, t := range tagList {
		if obj.HasTags(t) {
			return true
		}
	}
	return false
}

// ResolvBody drives a BodyData through the motion.Body interface. Positions
// are converted from resolv pixels (y down) to physics units (y up).
type ResolvBody struct {
	data *components.BodyData
}

func NewResolvBody(data *components.BodyData) *ResolvBody {
	if data.ScaleX == 0 {
		data.ScaleX = 1
	}
	if data.GravityScale == 0 {
		data.GravityScale = 1
	}
	return &ResolvBody{data: data}
}

func (b *ResolvBody) ID() motion.BodyID { return b.data.ID }

// Position is the centre of the legs collider.
func (b *ResolvBody) Position() motion.Vec2 {
	ppu := cfg.Motion.PixelsPerUnit
	legs := b.data.Legs
	return motion.Vec2{
		X: (legs.X + legs.W/2) / ppu,
		Y: -(legs.Y + legs.H/2) / ppu,
	}
}

func (b *ResolvBody) Velocity() motion.Vec2 {
	return motion.Vec2{X: b.data.VelX, Y: b.data.VelY}
}

func (b *ResolvBody) SetVelocity(v motion.Vec2) {
	b.data.VelX = v.X
	b.data.VelY = v.Y
}

func (b *ResolvBody) SetGravityScale(scale float64) {
	b.data.GravityScale = scale
}

func (b *ResolvBody) MirrorX() {
	b.data.ScaleX = -b.data.ScaleX
}

// ResolvPhysics answers circle overlap queries against a resolv space.
type ResolvPhysics struct {
	space *resolv.Space
	probe *resolv.Object
}

func NewResolvPhysics(space *resolv.Space) *ResolvPhysics {
	probe := resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	space.Add(probe)
	return &ResolvPhysics{space: space, probe: probe}
}

func (p *ResolvPhysics) OverlapCircle(center motion.Vec2, radius float64, mask motion.Mask) []motion.Overlap {
	tagList := tagsForMask(mask)
	if len(tagList) == 0 {
		return nil
	}

	ppu := cfg.Motion.PixelsPerUnit
	cx, cy, r := center.X*ppu, -center.Y*ppu, radius*ppu

	p.probe.X, p.probe.Y = cx-r, cy-r
	p.probe.W, p.probe.H = 2*r, 2*r
	p.probe.Update()

	check := p.probe.Check(0, 0, tagList...)
	if check == nil {
		return nil
	}

	var hits []motion.Overlap
	for _, obj := range check.Objects {
		if !hasAnyTag(obj, tagList) {
			continue
		}
		if !circleIntersectsRect(cx, cy, r, obj.X, obj.Y, obj.W, obj.H) {
			continue
		}
		hits = append(hits, motion.Overlap{Collider: obj, Owner: ownerOf(obj)})
	}
	return hits
}

func circleIntersectsRect(cx, cy, r, x, y, w, h float64) bool {
	nx := min(max(cx, x), x+w)
	ny := min(max(cy, y), y+h)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

// ownerOf reports the body a collider belongs to. Level geometry has no body.
func ownerOf(obj *resolv.Object) motion.BodyID {
	if e, ok := obj.Data.(*donburi.Entry); ok && e.Valid() && e.HasComponent(components.Body) {
		return components.Body.Get(e).ID
	}
	return motion.StaticBody
}

// CrouchCollider pulls the torso collider out of the space while crouched.
type CrouchCollider struct {
	data *components.BodyData
}

func NewCrouchCollider(data *components.BodyData) *CrouchCollider {
	return &CrouchCollider{data: data}
}

func (c *CrouchCollider) SetEnabled(enabled bool) {
	b := c.data
	if b.Torso == nil || b.TorsoEnabled == enabled {
		return
	}
	b.TorsoEnabled = enabled
	if enabled {
		syncTorso(b)
		if b.Legs.Space != nil {
			b.Legs.Space.Add(b.Torso)
		}
		return
	}
	if b.Torso.Space != nil {
		b.Torso.Space.Remove(b.Torso)
	}
}

func syncTorso(b *components.BodyData) {
	if b.Torso == nil {
		return
	}
	b.Torso.X = b.Legs.X
	b.Torso.Y = b.Legs.Y - b.Torso.H
	if b.TorsoEnabled {
		b.Torso.Update()
	}
}

// Contacts reports which sides of a body were blocked during a step.
type Contacts struct {
	Floor, Ceiling, Wall bool
}

// StepBody integrates one fixed physics step: gravity, fall speed clamp, then
// horizontal and vertical moves resolved against solids and one-way
// platforms.
func StepBody(b *components.BodyData, dt float64) Contacts {
	ppu := cfg.Motion.PixelsPerUnit

	b.VelY -= cfg.Motion.BaseGravity * b.GravityScale * dt
	b.VelY = gamemath.ClampSpeed(b.VelY, cfg.Motion.MaxFallSpeed)

	var c Contacts

	if dx := b.VelX * dt * ppu; dx != 0 {
		moved, blocked := sweepX(b, dx)
		moveBody(b, moved, 0)
		if blocked {
			b.VelX = 0
			c.Wall = true
		}
	}

	if dy := -b.VelY * dt * ppu; dy != 0 {
		moved, blocked := sweepY(b, dy)
		moveBody(b, 0, moved)
		if blocked {
			if dy > 0 {
				c.Floor = true
			} else {
				c.Ceiling = true
			}
			b.VelY = 0
		}
	}

	return c
}

func moveBody(b *components.BodyData, dx, dy float64) {
	b.Legs.X += dx
	b.Legs.Y += dy
	b.Legs.Update()
	syncTorso(b)
}

// candidates gathers the level colliders near the body's destination. Callers
// pad the move by a pixel so flush contacts are found.
func candidates(b *components.BodyData, dx, dy float64) []*resolv.Object {
	var out []*resolv.Object
	seen := map[*resolv.Object]bool{}
	add := func(obj *resolv.Object) {
		if obj == nil || obj.Space == nil {
			return
		}
		if check := obj.Check(dx, dy, tags.ResolvSolid, tags.ResolvPlatform); check != nil {
			for _, o := range check.Objects {
				if !seen[o] && hasAnyTag(o, []string{tags.ResolvSolid, tags.ResolvPlatform}) {
					seen[o] = true
					out = append(out, o)
				}
			}
		}
	}
	add(b.Legs)
	if b.TorsoEnabled {
		add(b.Torso)
	}
	return out
}

func sweepX(b *components.BodyData, dx float64) (float64, bool) {
	x, y, w, h := b.Legs.X, b.Top(), b.Legs.W, b.Height()
	blocked := false

	for _, o := range candidates(b, dx+gamemath.Sign(dx), 0) {
		if o.HasTags(tags.ResolvPlatform) {
			continue
		}
		if y+h <= o.Y+contactEpsilon || y >= o.Y+o.H-contactEpsilon {
			continue
		}
		if dx > 0 && o.X >= x+w-contactEpsilon {
			if gap := o.X - (x + w); gap < dx {
				dx = max(gap, 0)
				blocked = true
			}
		} else if dx < 0 && o.X+o.W <= x+contactEpsilon {
			if gap := o.X + o.W - x; gap > dx {
				dx = min(gap, 0)
				blocked = true
			}
		}
	}
	return dx, blocked
}

func sweepY(b *components.BodyData, dy float64) (float64, bool) {
	x, y, w, h := b.Legs.X, b.Top(), b.Legs.W, b.Height()
	blocked := false

	for _, o := range candidates(b, 0, dy+gamemath.Sign(dy)) {
		if x+w <= o.X+contactEpsilon || x >= o.X+o.W-contactEpsilon {
			continue
		}
		platform := o.HasTags(tags.ResolvPlatform)
		if dy > 0 && o.Y >= y+h-contactEpsilon {
			if gap := o.Y - (y + h); gap < dy {
				dy = max(gap, 0)
				blocked = true
			}
		} else if dy < 0 && !platform && o.Y+o.H <= y+contactEpsilon {
			if gap := o.Y + o.H - y; gap > dy {
				dy = min(gap, 0)
				blocked = true
			}
		}
	}
	return dy, blocked
}
