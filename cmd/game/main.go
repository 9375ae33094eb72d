// Command game runs Ghost Hunt in a window.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Ghost-Hunt/internal/config"
	"github.com/Garsondee/Ghost-Hunt/internal/game"
	"github.com/Garsondee/Ghost-Hunt/internal/save"
	"github.com/Garsondee/Ghost-Hunt/internal/session"
	"github.com/Garsondee/Ghost-Hunt/internal/telemetry"
	"github.com/Garsondee/Ghost-Hunt/internal/world"
)

func main() {
	// .env is optional; variables may already be set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	var configPath string
	var load bool
	flag.StringVar(&configPath, "config", os.Getenv("GHOSTHUNT_CONFIG"), "YAML config file (default: built-in settings)")
	flag.BoolVar(&load, "load", false, "resume the saved game if there is one")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	m, err := world.LoadTiledMapFile(cfg.MapPath)
	if err != nil {
		log.Fatalf("map: %v", err)
	}
	store, closeStore, err := cfg.Save.OpenStore()
	if err != nil {
		log.Fatalf("save store: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("save store: %v", err)
		}
	}()

	logger := log.Default()
	mixer := game.NewMixer(audio.NewContext(game.SampleRate), cfg.AssetsDir, logger)

	seed := cfg.Round.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	roundOpts := cfg.Round.Options
	roundOpts.Rand = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness

	tracer := telemetry.Tracer("session")
	sess := session.New(ctx, session.Options{
		Map:              m,
		Player:           cfg.Player,
		Hitbox:           cfg.Hitbox,
		Round:            roundOpts,
		Spawn:            cfg.Spawn.Pos(),
		DamageHold:       cfg.Round.DamageHold,
		AutoSaveInterval: cfg.Save.AutoSaveInterval,
		Saves:            save.NewManager(store, save.WithLogger(logger), save.WithTracer(tracer)),
		Sound:            mixer,
		Logger:           logger,
		Tracer:           tracer,
		LoadSaved:        load,
	})
	log.Printf("session %s: round %d, target %q", sess.ID(), sess.Rounds().Round(), sess.Rounds().Target())

	g, err := game.New(sess, game.Options{
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		TickRate: cfg.TickRate,
		Mixer:    mixer,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game error: %v", err)
	}
}
