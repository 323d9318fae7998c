package config

import (
	"image/color"

	"github.com/automoto/partyroom/shared/netconfig"
)

type Config struct {
	Width  int
	Height int
}

// MotionHostConfig describes the physics world the motion controller runs in.
// Controller tuning itself lives in motion.yaml.
type MotionHostConfig struct {
	PixelsPerUnit float64 // screen pixels per physics unit
	FixedHz       int     // physics steps per second
	BaseGravity   float64 // units/s², multiplied by the controller's gravity scale
	MaxFallSpeed  float64 // units/s

	// Collider sizes in pixels. The legs box is always present; the torso box
	// sits on top of it and is removed while crouching.
	BodyWidth   float64
	LegsHeight  float64
	TorsoHeight float64
}

type NetworkConfig struct {
	DefaultAddress string
	MasterURL      string
	Version        string
	PvpRoom        string
	CoinFlipRoom   string
	MaxPlayers     int
	DefaultName    string
}

type SquashStretchConfig struct {
	JumpScaleX float64 // horizontal scale on jump (< 1 = narrower)
	JumpScaleY float64 // vertical scale on jump (> 1 = taller)
	LandScaleX float64 // horizontal scale on land (> 1 = wider)
	LandScaleY float64 // vertical scale on land (< 1 = shorter)
	LerpSpeed  float64 // how fast to return to normal scale
}

type LauncherConfig struct {
	BackgroundColor color.RGBA
	TitleColor      color.RGBA
	TextColor       color.RGBA
	ButtonIdle      color.RGBA
	ButtonHover     color.RGBA
	ButtonPressed   color.RGBA
	InputBackground color.RGBA
	Title           string
	Modes           []string
}

type ArenaConfig struct {
	BackgroundColor color.RGBA
	SolidColor      color.RGBA
	PlatformColor   color.RGBA
	LocalColor      color.RGBA
	RemoteColor     color.RGBA
	NameColor       color.RGBA
	NameOffsetY     float64
}

type CoinConfig struct {
	BackgroundColor color.RGBA
	HeadColor       color.RGBA
	TailColor       color.RGBA
	EdgeColor       color.RGBA
	Radius          float64
	FlipSeconds     float64 // duration of one full 1 -> 0 -> 1 squash
	Flips           int     // squashes per flip animation
}

type DebugConfig struct {
	ShowColliders bool   // Draw ground and ceiling probes
	TuningFile    string // YAML file overriding the embedded motion tuning
}

var C *Config
var Motion MotionHostConfig
var Network NetworkConfig
var SquashStretch SquashStretchConfig
var Launcher LauncherConfig
var Arena ArenaConfig
var Coin CoinConfig
var Debug DebugConfig

var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Slate        = color.RGBA{R: 70, G: 80, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Motion = MotionHostConfig{
		PixelsPerUnit: 16,
		FixedHz:       50,
		BaseGravity:   1,
		MaxFallSpeed:  30,

		BodyWidth:   14,
		LegsHeight:  16,
		TorsoHeight: 14,
	}

	Network = NetworkConfig{
		DefaultAddress: "localhost:7373",
		Version:        netconfig.Version,
		PvpRoom:        netconfig.PvpRoom,
		CoinFlipRoom:   netconfig.CoinFlipRoom,
		MaxPlayers:     netconfig.DefaultMaxPlayers,
		DefaultName:    "Player",
	}

	SquashStretch = SquashStretchConfig{
		JumpScaleX: 0.7,
		JumpScaleY: 1.5,
		LandScaleX: 1.5,
		LandScaleY: 0.6,
		LerpSpeed:  0.10,
	}

	Launcher = LauncherConfig{
		BackgroundColor: color.RGBA{R: 15, G: 25, B: 50, A: 255},
		TitleColor:      Orange,
		TextColor:       White,
		ButtonIdle:      DarkBlue,
		ButtonHover:     LightBlue,
		ButtonPressed:   BrightOrange,
		InputBackground: color.RGBA{R: 30, G: 40, B: 70, A: 255},
		Title:           "PARTY ROOM",
		Modes:           []string{"PVP Room", "Coin Flip"},
	}

	Arena = ArenaConfig{
		BackgroundColor: color.RGBA{R: 20, G: 22, B: 35, A: 255},
		SolidColor:      Slate,
		PlatformColor:   DarkBlue,
		LocalColor:      BrightOrange,
		RemoteColor:     LightBlue,
		NameColor:       White,
		NameOffsetY:     6,
	}

	Coin = CoinConfig{
		BackgroundColor: color.RGBA{R: 25, G: 35, B: 30, A: 255},
		HeadColor:       color.RGBA{R: 230, G: 190, B: 60, A: 255},
		TailColor:       color.RGBA{R: 190, G: 190, B: 200, A: 255},
		EdgeColor:       color.RGBA{R: 120, G: 90, B: 30, A: 255},
		Radius:          48,
		FlipSeconds:     0.25,
		Flips:           4,
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		ShowColliders: false,
	}
}
