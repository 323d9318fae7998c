package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/automoto/partyroom/components"
)

func TestFlipIsDeterministicForASeed(t *testing.T) {
	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))
	for i := range 64 {
		if fa, fb := Flip(a), Flip(b); fa != fb {
			t.Fatalf("flip %d differs: %v vs %v", i, fa, fb)
		}
	}
}

func TestFlipIsRoughlyFair(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	const n = 10000
	heads := 0
	for range n {
		if Flip(rng) == components.CoinHead {
			heads++
		}
	}
	if heads < n*45/100 || heads > n*55/100 {
		t.Fatalf("heads %d of %d", heads, n)
	}
}

func TestCoinFaceString(t *testing.T) {
	cases := []struct {
		face components.CoinFace
		want string
	}{
		{components.CoinHead, "Head"},
		{components.CoinTail, "Tail"},
	}
	for _, c := range cases {
		if got := c.face.String(); got != c.want {
			t.Fatalf("want %q, got %q", c.want, got)
		}
	}
}

func TestFlipAnimationSettlesOnPickedFace(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for round := 1; round <= 4; round++ {
		coin := &components.CoinData{ScaleX: 1}
		face := StartFlipping(coin, rng)
		if !coin.Flipping {
			t.Fatal("flip did not start")
		}

		minScale := coin.ScaleX
		for i := 0; coin.Flipping; i++ {
			if i > 1000 {
				t.Fatal("animation never finished")
			}
			AdvanceCoin(coin, 0.01)
			minScale = min(minScale, coin.ScaleX)
		}

		if minScale > 0.1 {
			t.Fatalf("coin never went edge-on, min scale %v", minScale)
		}
		if coin.ScaleX != 1 {
			t.Fatalf("scale not restored: %v", coin.ScaleX)
		}
		if coin.Shown != face || coin.Face != face {
			t.Fatalf("shown %v, face %v, picked %v", coin.Shown, coin.Face, face)
		}
		if coin.Flips != 1 {
			t.Fatalf("flips %d", coin.Flips)
		}
	}
}

func TestAdvanceIdleCoinIsNoop(t *testing.T) {
	coin := &components.CoinData{Face: components.CoinTail, Shown: components.CoinTail, ScaleX: 1}
	AdvanceCoin(coin, 1)
	if coin.ScaleX != 1 || coin.Shown != components.CoinTail || coin.Flips != 0 {
		t.Fatalf("idle coin changed: %+v", *coin)
	}
}
