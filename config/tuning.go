package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/automoto/partyroom/shared/motion"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

//go:embed motion.yaml
var embeddedTuning []byte

type vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// MotionTuning is the YAML form of motion.Config.
type MotionTuning struct {
	CanJump              bool     `yaml:"can_jump"`
	JumpHeight           float64  `yaml:"jump_height"`
	JumpDuration         float64  `yaml:"jump_duration"`
	FallMultiplier       float64  `yaml:"fall_multiplier"`
	LowJumpMultiplier    float64  `yaml:"low_jump_multiplier"`
	AirControl           bool     `yaml:"air_control"`
	AirborneSpeedPenalty float64  `yaml:"airborne_speed_penalty"`
	GroundMask           uint32   `yaml:"ground_mask"`
	GroundCheck          vec2Spec `yaml:"ground_check"`
	CeilingCheck         vec2Spec `yaml:"ceiling_check"`
	LeaveGroundLeniency  float64  `yaml:"leave_ground_leniency"`
	EarlyJumpLeniency    float64  `yaml:"early_jump_leniency"`
	CanCrouch            bool     `yaml:"can_crouch"`
	CrouchSpeedPenalty   float64  `yaml:"crouch_speed_penalty"`
	Speed                float64  `yaml:"speed"`
	MovementSmoothing    float64  `yaml:"movement_smoothing"`
}

func tuningFromConfig(c motion.Config) MotionTuning {
	return MotionTuning{
		CanJump:              c.CanJump,
		JumpHeight:           c.JumpHeight,
		JumpDuration:         c.JumpDuration,
		FallMultiplier:       c.FallMultiplier,
		LowJumpMultiplier:    c.LowJumpMultiplier,
		AirControl:           c.AirControl,
		AirborneSpeedPenalty: c.AirborneSpeedPenalty,
		GroundMask:           uint32(c.GroundMask),
		GroundCheck:          vec2Spec{X: c.GroundCheck.X, Y: c.GroundCheck.Y},
		CeilingCheck:         vec2Spec{X: c.CeilingCheck.X, Y: c.CeilingCheck.Y},
		LeaveGroundLeniency:  c.LeaveGroundLeniency,
		EarlyJumpLeniency:    c.EarlyJumpLeniency,
		CanCrouch:            c.CanCrouch,
		CrouchSpeedPenalty:   c.CrouchSpeedPenalty,
		Speed:                c.Speed,
		MovementSmoothing:    c.MovementSmoothing,
	}
}

// Config converts the tuning into a controller config.
func (t MotionTuning) Config() motion.Config {
	return motion.Config{
		CanJump:              t.CanJump,
		JumpHeight:           t.JumpHeight,
		JumpDuration:         t.JumpDuration,
		FallMultiplier:       t.FallMultiplier,
		LowJumpMultiplier:    t.LowJumpMultiplier,
		AirControl:           t.AirControl,
		AirborneSpeedPenalty: t.AirborneSpeedPenalty,
		GroundMask:           motion.Mask(t.GroundMask),
		GroundCheck:          motion.Vec2{X: t.GroundCheck.X, Y: t.GroundCheck.Y},
		CeilingCheck:         motion.Vec2{X: t.CeilingCheck.X, Y: t.CeilingCheck.Y},
		LeaveGroundLeniency:  t.LeaveGroundLeniency,
		EarlyJumpLeniency:    t.EarlyJumpLeniency,
		CanCrouch:            t.CanCrouch,
		CrouchSpeedPenalty:   t.CrouchSpeedPenalty,
		Speed:                t.Speed,
		MovementSmoothing:    t.MovementSmoothing,
	}
}

// ParseTuning decodes YAML tuning. Keys missing from data keep the
// controller defaults.
func ParseTuning(data []byte) (motion.Config, error) {
	t := tuningFromConfig(motion.DefaultConfig())
	if err := yaml.Unmarshal(data, &t); err != nil {
		return motion.Config{}, fmt.Errorf("parse tuning: %w", err)
	}
	cfg := t.Config()
	if err := cfg.Validate(); err != nil {
		return motion.Config{}, fmt.Errorf("parse tuning: %w", err)
	}
	return cfg, nil
}

// LoadTuning reads tuning from path, or the embedded motion.yaml when path is
// empty.
func LoadTuning(path string) (motion.Config, error) {
	if path == "" {
		return ParseTuning(embeddedTuning)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return motion.Config{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}

// TuningWatcher reloads a tuning file whenever it changes on disk.
type TuningWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	Updates chan motion.Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchTuning starts watching path. The parent directory is watched so
// editors that replace the file on save are still picked up.
func WatchTuning(path string) (*TuningWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	tw := &TuningWatcher{
		path:    filepath.Clean(path),
		watcher: w,
		Updates: make(chan motion.Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go tw.run()
	return tw, nil
}

func (w *TuningWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns the latest reloaded config, if any. Non-blocking.
func (w *TuningWatcher) Poll() (motion.Config, bool) {
	select {
	case cfg := <-w.Updates:
		return cfg, true
	default:
		return motion.Config{}, false
	}
}

// reloadDelay coalesces the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

func (w *TuningWatcher) run() {
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(reloadDelay)
		case <-timer.C:
			cfg, err := LoadTuning(w.path)
			if err != nil {
				w.pushErr(err)
				continue
			}
			select { // drain stale, push latest
			case <-w.Updates:
			default:
			}
			w.Updates <- cfg
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.pushErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *TuningWatcher) pushErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
