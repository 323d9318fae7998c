package systems

import (
	"math"
	"testing"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/motion"
	"github.com/automoto/partyroom/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	floorY = 160.0
	stepDt = 0.02
	eps    = 1e-6
)

// newArena builds a 320x240 space with a floor whose top edge is at floorY.
func newArena(t *testing.T) *ecs.ECS {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSpace(e, 320, 240, 16, 16)
	factory.CreateWall(e, 0, floorY, 320, 16)
	return e
}

func feet(b *components.BodyData) float64 {
	return b.Legs.Y + b.Legs.H
}

func TestStepBodyLandsOnFloor(t *testing.T) {
	e := newArena(t)
	body := components.Body.Get(factory.CreatePlayer(e, 100, 120, "p"))
	body.GravityScale = 50

	landed := false
	for range 200 {
		if StepBody(body, stepDt).Floor {
			landed = true
		}
	}

	if !landed {
		t.Fatal("never reported floor contact")
	}
	if math.Abs(feet(body)-floorY) > eps {
		t.Fatalf("feet at %v, want %v", feet(body), floorY)
	}
	if body.VelY != 0 {
		t.Fatalf("vertical velocity not cleared: %v", body.VelY)
	}
	if body.Torso.Y+body.Torso.H != body.Legs.Y {
		t.Fatal("torso detached from legs")
	}
}

func TestStepBodyClampsFallSpeed(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSpace(e, 320, 2400, 16, 16)
	body := components.Body.Get(factory.CreatePlayer(e, 100, 40, "p"))
	body.GravityScale = 1000

	for range 3 {
		StepBody(body, stepDt)
	}
	if body.VelY < -cfg.Motion.MaxFallSpeed-eps {
		t.Fatalf("fall speed %v exceeds %v", body.VelY, cfg.Motion.MaxFallSpeed)
	}
}

func TestStepBodyStopsAtWall(t *testing.T) {
	e := newArena(t)
	factory.CreateWall(e, 150, 96, 16, 64)
	body := components.Body.Get(factory.CreatePlayer(e, 100, floorY, "p"))

	hitWall := false
	for range 30 {
		body.VelX = 20
		if StepBody(body, stepDt).Wall {
			hitWall = true
		}
	}

	if !hitWall {
		t.Fatal("never reported wall contact")
	}
	if right := body.Legs.X + body.Legs.W; math.Abs(right-150) > eps {
		t.Fatalf("right edge at %v, want 150", right)
	}
	if math.Abs(feet(body)-floorY) > eps {
		t.Fatalf("walking changed height: feet %v", feet(body))
	}
}

func TestPlatformIsOneWay(t *testing.T) {
	e := newArena(t)
	factory.CreatePlatform(e, 80, 100, 64, 16)
	body := components.Body.Get(factory.CreatePlayer(e, 100, floorY, "p"))
	body.GravityScale = 0

	for range 10 {
		body.VelY = 20
		if StepBody(body, stepDt).Ceiling {
			t.Fatal("platform blocked a body rising through it")
		}
	}
	if feet(body) >= 100 {
		t.Fatalf("body did not pass the platform, feet %v", feet(body))
	}

	landed := false
	for range 10 {
		body.VelY = -20
		if StepBody(body, stepDt).Floor {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("body fell through the platform")
	}
	if math.Abs(feet(body)-100) > eps {
		t.Fatalf("feet at %v, want 100", feet(body))
	}
}

func TestResolvPhysicsReportsOwners(t *testing.T) {
	e := newArena(t)
	entry := factory.CreatePlayer(e, 100, floorY, "p")
	body := components.Body.Get(entry)
	space := components.Space.Get(components.Space.MustFirst(e.World))
	physics := NewResolvPhysics(space)
	ppu := cfg.Motion.PixelsPerUnit

	ground := physics.OverlapCircle(motion.Vec2{X: 100 / ppu, Y: -floorY / ppu}, 0.2, MaskGround)
	if len(ground) == 0 {
		t.Fatal("floor not found under the feet")
	}
	for _, hit := range ground {
		if hit.Owner != motion.StaticBody {
			t.Fatalf("level geometry reported owner %d", hit.Owner)
		}
	}

	legsCentre := NewResolvBody(body).Position()
	players := physics.OverlapCircle(legsCentre, 0.2, MaskPlayers)
	if len(players) == 0 || players[0].Owner != body.ID {
		t.Fatalf("want own legs with owner %d, got %+v", body.ID, players)
	}

	if hits := physics.OverlapCircle(legsCentre, 0.2, MaskGround); len(hits) != 0 {
		t.Fatalf("ground mask matched player colliders: %+v", hits)
	}
	if hits := physics.OverlapCircle(legsCentre, 0.2, 0); hits != nil {
		t.Fatal("empty mask should match nothing")
	}
}

func TestCrouchColliderTogglesTorso(t *testing.T) {
	e := newArena(t)
	entry := factory.CreatePlayer(e, 100, floorY, "p")
	body := components.Body.Get(entry)
	space := components.Space.Get(components.Space.MustFirst(e.World))
	physics := NewResolvPhysics(space)
	ppu := cfg.Motion.PixelsPerUnit

	torsoCentre := motion.Vec2{
		X: (body.Torso.X + body.Torso.W/2) / ppu,
		Y: -(body.Torso.Y + body.Torso.H/2) / ppu,
	}
	crouch := NewCrouchCollider(body)

	crouch.SetEnabled(false)
	if hits := physics.OverlapCircle(torsoCentre, 0.2, MaskPlayers); len(hits) != 0 {
		t.Fatalf("torso still collides while crouched: %+v", hits)
	}
	if body.Height() != cfg.Motion.LegsHeight {
		t.Fatalf("crouched height %v", body.Height())
	}

	crouch.SetEnabled(true)
	if hits := physics.OverlapCircle(torsoCentre, 0.2, MaskPlayers); len(hits) == 0 {
		t.Fatal("torso missing after standing up")
	}
	if body.Height() != cfg.Motion.LegsHeight+cfg.Motion.TorsoHeight {
		t.Fatalf("standing height %v", body.Height())
	}
}

func TestResolvBodyMirrorsAndConvertsUnits(t *testing.T) {
	e := newArena(t)
	body := components.Body.Get(factory.CreatePlayer(e, 64, floorY, "p"))
	rb := NewResolvBody(body)
	ppu := cfg.Motion.PixelsPerUnit

	want := motion.Vec2{X: 64 / ppu, Y: -(floorY - cfg.Motion.LegsHeight/2) / ppu}
	if got := rb.Position(); math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps {
		t.Fatalf("position %+v, want %+v", got, want)
	}

	rb.MirrorX()
	if body.ScaleX != -1 {
		t.Fatalf("scale after mirror %v", body.ScaleX)
	}
	rb.MirrorX()
	if body.ScaleX != 1 {
		t.Fatalf("scale after second mirror %v", body.ScaleX)
	}
}

func TestControllerJumpsAndLandsInSpace(t *testing.T) {
	e := newArena(t)
	entry := factory.CreatePlayer(e, 100, floorY, "p")
	tuning := motion.DefaultConfig()
	tuning.JumpHeight = 4
	tuning.JumpDuration = 0.4
	tuning.GroundCheck = motion.Vec2{X: 0, Y: -0.6}
	if err := AttachController(entry, tuning); err != nil {
		t.Fatal(err)
	}

	m := components.Motion.Get(entry)
	body := components.Body.Get(entry)
	landings := 0
	m.Controller.OnLanding(func() { landings++ })

	for range 5 {
		StepMotion(m, body, stepDt, 0, false, false)
	}
	if !m.Controller.Grounded() {
		t.Fatal("not grounded while standing on the floor")
	}
	landings = 0

	StepMotion(m, body, stepDt, 0, false, true)
	if math.Abs(body.VelY-tuning.JumpVelocity()) > eps {
		t.Fatalf("launch velocity %v, want %v", body.VelY, tuning.JumpVelocity())
	}
	if got := components.State.Get(entry).CurrentState; got != cfg.Jump {
		t.Fatalf("state after jump %v", got)
	}

	// Holding jump re-jumps on touchdown, so release it near the apex.
	peak := feet(body)
	for i := range 150 {
		StepMotion(m, body, stepDt, 0, false, i < 15)
		peak = min(peak, feet(body))
	}

	if rise := floorY - peak; rise < 2*cfg.Motion.PixelsPerUnit {
		t.Fatalf("jump only rose %v px", rise)
	}
	if math.Abs(feet(body)-floorY) > eps {
		t.Fatalf("did not land, feet at %v", feet(body))
	}
	if landings != 1 {
		t.Fatalf("landings %d, want 1", landings)
	}
	if !m.Controller.Grounded() {
		t.Fatal("not grounded after landing")
	}
}

func TestCrouchUnderBeamStaysCrouched(t *testing.T) {
	e := newArena(t)
	// Beam leaves room for the legs only.
	factory.CreateWall(e, 60, floorY-cfg.Motion.LegsHeight-8, 80, 8)
	entry := factory.CreatePlayer(e, 40, floorY, "p")
	tuning := motion.DefaultConfig()
	tuning.MovementSmoothing = 0
	tuning.GroundCheck = motion.Vec2{X: 0, Y: -0.6}
	tuning.CeilingCheck = motion.Vec2{X: 0, Y: 1.0}
	if err := AttachController(entry, tuning); err != nil {
		t.Fatal(err)
	}

	m := components.Motion.Get(entry)
	body := components.Body.Get(entry)
	for range 60 {
		StepMotion(m, body, stepDt, 1, true, false)
		if body.Legs.X > 90 {
			break
		}
	}
	if body.Legs.X <= 60 {
		t.Fatalf("crouch-walk did not get under the beam, x %v", body.Legs.X)
	}

	StepMotion(m, body, stepDt, 0, false, false)
	if !m.Controller.Crouching() {
		t.Fatal("stood up under the beam")
	}
	if body.TorsoEnabled {
		t.Fatal("torso re-enabled under the beam")
	}
}
