package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/ecs/debugui"
	debugui_ebiten "github.com/plus3/glide/ecs/debugui/ebiten"
	"github.com/plus3/glide/internal/config"
	"github.com/plus3/glide/internal/demo"
	"github.com/plus3/glide/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Optional config file. Changes to it are applied while running.")
	timestep := flag.Duration("timestep", 0, "Override the fixed timestep, e.g. 100ms to make easing obvious.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the initial bodies.")
	flag.Parse()

	v := config.New()
	cfg, err := config.Load(v, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *timestep > 0 {
		cfg.Timestep = *timestep
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	backend := debugui_ebiten.NewImguiBackend("glide demo", cfg.Demo.Width, cfg.Demo.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// One Update per rendered frame, so the fixed clock sees real frame times.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	world, err := demo.Build(cfg, logging.Sampled(logger), demo.Options{
		Seed:     *seed,
		Register: debugui.Register,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build demo world")
	}

	ecs.NewSingleton[debugui.ImguiInputState](world.Storage)
	world.Scheduler.Add(ecs.Last, &debugui.ImguiSystem{})

	stats := debugui.NewSchedulerPanel(world.Scheduler, 240)
	inspector := debugui.NewInspector(25)
	game := &Game{
		world:   world,
		backend: backend,
		stats:   stats,
		showUI:  cfg.Demo.Debug,
		reloads: make(chan reload, 1),
		logger:  logger,

		timestep: *timestep,
	}
	panel := &EasingPanel{game: game, inspector: inspector}

	world.Storage.Spawn(debugui.PanelItem{Panel: panel, Pos: imgui.NewVec2(10, 10), Size: imgui.NewVec2(360, 420)})
	world.Storage.Spawn(debugui.PanelItem{Panel: stats, Pos: imgui.NewVec2(380, 10), Size: imgui.NewVec2(440, 380)})
	world.Storage.Spawn(debugui.PanelItem{Panel: inspector, Pos: imgui.NewVec2(10, 440), Size: imgui.NewVec2(500, 300)})

	if *configPath != "" {
		config.Watch(v, func(cfg config.Config, err error) {
			// Applied on the game goroutine; a burst of writes keeps only the first.
			select {
			case game.reloads <- reload{cfg: cfg, err: err}:
			default:
			}
		})
	}

	logger.Info().
		Dur("timestep", cfg.Timestep).
		Str("keys", "T teleport, M cycle mode, G ghosts, F1 debug UI, Esc quit").
		Msg("Starting demo")

	game.last = time.Now()
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("Demo exited")
	}
}
