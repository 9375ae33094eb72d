// Package config loads the game's YAML tuning file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Ghost-Hunt/internal/entity"
	"github.com/Garsondee/Ghost-Hunt/internal/round"
	"github.com/Garsondee/Ghost-Hunt/internal/save"
	"github.com/Garsondee/Ghost-Hunt/internal/telemetry"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

type Config struct {
	Window    Window              `yaml:"window"`
	TickRate  int                 `yaml:"tick_rate"` // simulation ticks per second
	MapPath   string              `yaml:"map_path"`
	AssetsDir string              `yaml:"assets_dir"`
	Spawn     Spawn               `yaml:"spawn"`
	Player    entity.PlayerTuning `yaml:"player"`
	Hitbox    world.Hitbox        `yaml:"hitbox"`
	Round     Round               `yaml:"round"`
	Save      Save                `yaml:"save"`
	Telemetry telemetry.Config    `yaml:"telemetry"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Spawn is the player start in tile units (fractions allowed).
type Spawn struct {
	Col float64 `yaml:"col"`
	Row float64 `yaml:"row"`
}

// Pos returns the spawn point in world pixels.
func (s Spawn) Pos() world.Vec { return world.TileVec(s.Col, s.Row) }

type Round struct {
	round.Options `yaml:",inline"`
	DamageHold    float64 `yaml:"damage_hold"` // seconds the damage scene plays before round end
	Seed          int64   `yaml:"seed"`        // 0: seed from the clock
}

// Save backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Save struct {
	Backend          string  `yaml:"backend"`
	Dir              string  `yaml:"dir"`         // file backend
	SQLitePath       string  `yaml:"sqlite_path"` // sqlite backend
	AutoSaveInterval float64 `yaml:"autosave_interval"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Window:    Window{Width: 960, Height: 540, Title: "Ghost Hunt"},
		TickRate:  60,
		MapPath:   "assets/map.json",
		AssetsDir: "assets",
		Spawn:     Spawn{Col: 20.5, Row: 63.4},
		Player:    entity.DefaultPlayerTuning(),
		Hitbox:    world.DefaultHitbox,
		Round:     Round{Options: round.DefaultOptions(), DamageHold: 5},
		Save: Save{
			Backend:          BackendFile,
			Dir:              "saves",
			SQLitePath:       "saves/ghost-hunt.sqlite",
			AutoSaveInterval: 5,
		},
	}
}

// Load overlays the YAML file at path on Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Dt is the fixed simulation step in seconds.
func (c Config) Dt() float64 { return 1 / float64(c.TickRate) }

// Validate checks ranges. It also bounds run speed against tick rate so a
// single step can never skip over a wall.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size must be positive")
	check(c.TickRate > 0, "tick_rate: must be positive, got %d", c.TickRate)
	check(c.Player.WalkSpeed > 0, "player.walk_speed: must be positive")
	check(c.Player.RunSpeed >= c.Player.WalkSpeed, "player.run_speed: must be at least walk_speed")
	check(c.Player.MaxStamina > 0, "player.max_stamina: must be positive")
	check(c.Player.StaminaDrain >= 0 && c.Player.StaminaRegen >= 0, "player: stamina rates must not be negative")
	check(c.Player.SignDuration > 0, "player.sign_duration: must be positive")
	check(c.Hitbox.Width > 0 && c.Hitbox.Height > 0, "hitbox: size must be positive")
	check(c.Round.MaxRounds > 0, "round.max_rounds: must be positive")
	check(c.Round.BaseTime > 0, "round.base_time: must be positive")
	check(c.Round.DamageHold >= 0, "round.damage_hold: must not be negative")
	check(c.Save.AutoSaveInterval > 0, "save.autosave_interval: must be positive")
	switch c.Save.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("save.backend: unknown %q", c.Save.Backend))
	}

	if c.TickRate > 0 {
		step := c.Player.RunSpeed * c.Dt()
		limit := (&world.Resolver{Hitbox: c.Hitbox}).MaxSafeStep()
		check(step < limit, "player.run_speed: %.1f px per tick at %d Hz reaches the %.0f px hitbox and can tunnel through walls",
			step, c.TickRate, limit)
	}
	return errors.Join(errs...)
}

// OpenStore opens the configured save backend. closeFn releases it.
func (s Save) OpenStore() (store save.Store, closeFn func() error, err error) {
	noop := func() error { return nil }
	switch s.Backend {
	case BackendSQLite:
		sq, err := save.OpenSQLite(s.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sq, sq.Close, nil
	case BackendMemory:
		return save.NewMemoryStore(), noop, nil
	default:
		return save.NewFileStore(s.Dir), noop, nil
	}
}
