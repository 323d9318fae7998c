package systems

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// Flip picks a face uniformly at random.
func Flip(rng *rand.Rand) components.CoinFace {
	if rng.IntN(2) == 0 {
		return components.CoinHead
	}
	return components.CoinTail
}

// StartFlipping picks the coin's new face and starts the squash animation.
// The face is decided up front; the animation only hides it until done.
func StartFlipping(coin *components.CoinData, rng *rand.Rand) components.CoinFace {
	coin.Face = Flip(rng)
	coin.Flipping = true
	coin.Tween = newFlipSequence(cfg.Coin.Flips, float32(cfg.Coin.FlipSeconds))
	return coin.Face
}

// newFlipSequence squashes the X scale 1 -> 0 -> 1 once per flip.
func newFlipSequence(flips int, seconds float32) *gween.Sequence {
	seq := gween.NewSequence()
	half := seconds / 2
	for range max(flips, 1) {
		seq.Add(
			gween.New(1, 0, half, ease.InQuad),
			gween.New(0, 1, half, ease.OutQuad),
		)
	}
	return seq
}

// AdvanceCoin moves the flip animation forward by dt seconds. The shown face
// alternates at each edge-on moment and settles on the picked face.
func AdvanceCoin(coin *components.CoinData, dt float32) {
	if !coin.Flipping || coin.Tween == nil {
		return
	}

	scale, tweenDone, done := coin.Tween.Update(dt)
	coin.ScaleX = float64(scale)

	// A finished squash leaves the coin edge-on.
	if tweenDone && scale < 0.5 {
		coin.Shown = otherFace(coin.Shown)
	}

	if done {
		coin.ScaleX = 1
		coin.Shown = coin.Face
		coin.Flipping = false
		coin.Tween = nil
		coin.Flips++
	}
}

func otherFace(f components.CoinFace) components.CoinFace {
	if f == components.CoinHead {
		return components.CoinTail
	}
	return components.CoinHead
}

// UpdateCoin advances every coin by one frame.
func UpdateCoin(ecs *ecs.ECS) {
	dt := float32(1.0 / float64(ebiten.TPS()))
	components.Coin.Each(ecs.World, func(e *donburi.Entry) {
		AdvanceCoin(components.Coin.Get(e), dt)
	})
}

// minCoinScale keeps an edge-on coin visible as a thin line.
const minCoinScale = 0.03

var coinImages = map[components.CoinFace]*ebiten.Image{}

// coinImage renders a face once and caches it.
func coinImage(face components.CoinFace) *ebiten.Image {
	if img, ok := coinImages[face]; ok {
		return img
	}

	r := float32(cfg.Coin.Radius)
	size := int(math.Ceil(cfg.Coin.Radius*2)) + 2
	c := float32(size) / 2

	fill, letter := cfg.Coin.HeadColor, "H"
	if face == components.CoinTail {
		fill, letter = cfg.Coin.TailColor, "T"
	}

	img := ebiten.NewImage(size, size)
	vector.DrawFilledCircle(img, c, c, r, cfg.Coin.EdgeColor, true)
	vector.DrawFilledCircle(img, c, c, r-4, fill, true)

	titleFace := fonts.Title.Get()
	bounds, _ := font.BoundString(titleFace, letter)
	w := (bounds.Max.X - bounds.Min.X).Round()
	h := (bounds.Max.Y - bounds.Min.Y).Round()
	x := int(c) - w/2 - bounds.Min.X.Round()
	y := int(c) + h/2 - bounds.Max.Y.Round()
	text.Draw(img, letter, titleFace, x, y, cfg.Coin.EdgeColor)

	coinImages[face] = img
	return img
}

// DrawCoin draws every coin in the middle of the screen, squashed along X by
// its flip animation.
func DrawCoin(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Coin.BackgroundColor)

	components.Coin.Each(ecs.World, func(e *donburi.Entry) {
		coin := components.Coin.Get(e)
		img := coinImage(coin.Shown)
		w, h := img.Bounds().Dx(), img.Bounds().Dy()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(max(coin.ScaleX, minCoinScale), 1)
		op.GeoM.Translate(float64(cfg.C.Width)/2, float64(cfg.C.Height)/2-20)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	})
}
