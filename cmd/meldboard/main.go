package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gdamore/tcell/v2"

	"github.com/meldworks/meldboard/audio"
	"github.com/meldworks/meldboard/catalog"
	"github.com/meldworks/meldboard/client"
	"github.com/meldworks/meldboard/engine"
	"github.com/meldworks/meldboard/events"
	"github.com/meldworks/meldboard/render"
	"github.com/meldworks/meldboard/session"
	"github.com/meldworks/meldboard/systems"
)

// Config holds the environment-driven settings. Flags override these.
type Config struct {
	APIBaseURL   string `env:"MELDBOARD_API" envDefault:"http://localhost:8000"`
	Debug        bool   `env:"MELDBOARD_DEBUG"`
	AudioEnabled bool   `env:"MELDBOARD_AUDIO" envDefault:"true"`
}

var (
	apiFlag   = flag.String("api", "", "Generator service base URL (overrides MELDBOARD_API)")
	debugFlag = flag.Bool("debug", false, "Enable debug logging to file")
	muteFlag  = flag.Bool("mute", false, "Disable sound")
)

func main() {
	var screen tcell.Screen

	// Panic recovery: restore the terminal before the crash is printed
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\nmeldboard crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fatalf("parse environment: %v", err)
	}
	if *apiFlag != "" {
		cfg.APIBaseURL = *apiFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *muteFlag {
		cfg.AudioEnabled = false
	}

	logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	api, err := client.New(cfg.APIBaseURL)
	if err != nil {
		fatalf("service client: %v", err)
	}

	prefsPath, err := session.DefaultPath()
	if err != nil {
		// Fall back to the working directory rather than refusing to run
		prefsPath = "meldboard-session.json"
		log.Printf("config dir unavailable, using %s: %v", prefsPath, err)
	}
	store := session.NewStore(prefsPath)

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prefs, seedIDs, err := session.Bootstrap(bootCtx, store, api)
	if err != nil {
		fatalf("start session: %v", err)
	}

	cache := catalog.NewCache()
	if err := loadCatalog(bootCtx, api, cache, prefs.SessionID, seedIDs); err != nil {
		fatalf("load elements: %v", err)
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatalf("init terminal: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	width, height := screen.Size()
	ctx := engine.NewGameContext(width, height, engine.NewMonotonicTimeProvider(), events.NewQueue(), cache)
	ctx.Prefs = prefs
	ctx.Store = store

	sound := audio.NewSoundManager()
	if cfg.AudioEnabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("audio unavailable, continuing silent: %v", err)
		} else {
			ctx.Audio = sound
			defer sound.Cleanup()
		}
	}

	game := engine.NewGame(screen, ctx, render.NewBoardRenderer(prefs.Theme))
	game.AddSystem(systems.NewSurfaceSystem())
	game.AddSystem(systems.NewSelectionSystem())
	game.AddSystem(systems.NewCombineSystem(api))
	game.AddSystem(systems.NewLifecycleSystem())
	game.AddSystem(systems.NewToastSystem())

	sessionID := prefs.SessionID
	game.OnSafetyToggle = func(enabled bool) {
		callCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := api.UpdateSession(callCtx, sessionID, enabled); err != nil {
			log.Printf("safety sync failed: %v", err)
		}
	}

	if err := game.Run(); err != nil {
		fatalf("game loop: %v", err)
	}
}

// loadCatalog fills the cache with the session's discovered elements, in
// service order, marking the bootstrap seeds.
func loadCatalog(ctx context.Context, api *client.Client, cache *catalog.Cache, sessionID string, seedIDs []int) error {
	elements, err := api.Elements(ctx, sessionID, "")
	if err != nil {
		return err
	}
	seeds := make(map[int]bool, len(seedIDs))
	for _, id := range seedIDs {
		seeds[id] = true
	}
	for _, e := range elements {
		cache.Put(catalog.Entry{
			ID:          e.ID,
			Name:        e.Name,
			Glyph:       e.Glyph,
			Description: e.Description,
			Tags:        e.Tags,
			Seed:        e.Seed || seeds[e.ID],
		})
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
