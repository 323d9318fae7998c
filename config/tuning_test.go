package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/partyroom/shared/motion"
)

func TestEmbeddedTuningIsValid(t *testing.T) {
	cfg, err := LoadTuning("")
	if err != nil {
		t.Fatalf("embedded tuning: %v", err)
	}
	if !cfg.CanJump || !cfg.CanCrouch || cfg.GroundMask == 0 {
		t.Fatalf("unexpected embedded tuning %+v", cfg)
	}
}

func TestParseTuning(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, cfg motion.Config)
		wantErr error
	}{
		{
			name: "partial_keeps_defaults",
			yaml: "speed: 3\nground_check: {x: 0.25, y: -0.5}\n",
			check: func(t *testing.T, cfg motion.Config) {
				def := motion.DefaultConfig()
				if cfg.Speed != 3 || cfg.GroundCheck != (motion.Vec2{X: 0.25, Y: -0.5}) {
					t.Fatalf("override not applied: %+v", cfg)
				}
				if cfg.JumpHeight != def.JumpHeight || cfg.EarlyJumpLeniency != def.EarlyJumpLeniency {
					t.Fatalf("defaults not kept: %+v", cfg)
				}
			},
		},
		{
			name: "disable_jump",
			yaml: "can_jump: false\n",
			check: func(t *testing.T, cfg motion.Config) {
				if cfg.CanJump {
					t.Fatalf("expected jumping disabled")
				}
			},
		},
		{name: "out_of_range_penalty", yaml: "crouch_speed_penalty: 3\n", wantErr: motion.ErrInvalidConfig},
		{name: "zero_duration", yaml: "jump_duration: 0\n", wantErr: motion.ErrInvalidConfig},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := ParseTuning([]byte(c.yaml))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("want %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			c.check(t, cfg)
		})
	}

	if _, err := ParseTuning([]byte("speed: [")); err == nil {
		t.Fatalf("expected a yaml error")
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestTuningWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion.yaml")
	if err := os.WriteFile(path, []byte("speed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchTuning(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("speed: 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-w.Updates:
			if cfg.Speed == 2.5 {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatalf("no reload observed")
		}
	}
}
