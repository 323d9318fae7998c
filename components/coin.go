package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// CoinFace is the side a coin landed on.
type CoinFace int

const (
	CoinHead CoinFace = iota
	CoinTail
)

func (f CoinFace) String() string {
	if f == CoinTail {
		return "Tail"
	}
	return "Head"
}

type CoinData struct {
	Face     CoinFace
	Shown    CoinFace // face currently drawn while the animation runs
	Flipping bool
	ScaleX   float64
	Tween    *gween.Sequence
	Flips    int // completed flips since the scene started
}

var Coin = donburi.NewComponentType[CoinData]()
