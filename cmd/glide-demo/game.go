package main

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/ecs/debugui"
	debugui_ebiten "github.com/plus3/glide/ecs/debugui/ebiten"
	"github.com/plus3/glide/internal/config"
	"github.com/plus3/glide/internal/demo"
	"github.com/rs/zerolog"
)

var (
	background = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	ghostColor = color.RGBA{R: 200, G: 200, B: 200, A: 160}
)

type reload struct {
	cfg config.Config
	err error
}

type drawable struct {
	*easing.Transform
	*easing.DisplayTransform
	*demo.Sprite
}

// Game runs the scheduler once per rendered frame and draws display transforms.
type Game struct {
	world   *demo.World
	backend debugui_ebiten.ImguiBackend
	stats   *debugui.SchedulerPanel
	logger  zerolog.Logger

	sprites  *ecs.Query[drawable]
	last     time.Time
	reloads  chan reload
	// timestep overrides the configured one when set from the command line.
	timestep time.Duration

	showUI     bool
	showGhosts bool
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last)
	g.last = now

	select {
	case r := <-g.reloads:
		g.applyReload(r)
	default:
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	g.backend.Frame(func() {
		g.world.Scheduler.Once(dt.Seconds())
	})
	g.stats.Record(dt)
	return nil
}

func (g *Game) applyReload(r reload) {
	if r.err != nil {
		g.logger.Error().Err(r.err).Msg("Ignoring invalid config change")
		return
	}
	if g.timestep > 0 {
		r.cfg.Timestep = g.timestep
	}
	if err := g.world.Apply(r.cfg); err != nil {
		g.logger.Error().Err(err).Msg("Failed to apply config change")
		return
	}
	g.logger.Info().Dur("timestep", r.cfg.Timestep).Msg("Config reloaded")
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showUI = !g.showUI
	}

	var input *debugui.ImguiInputState
	if g.showUI && g.world.Storage.ReadSingleton(&input) && input.WantCaptureKeyboard {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.world.Teleport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.world.CycleMode()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGhosts = !g.showGhosts
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.sprites == nil {
		g.sprites = ecs.NewQuery[drawable](g.world.Storage)
	}
	g.sprites.Execute()

	for item := range g.sprites.Values() {
		if g.showGhosts {
			tr := *item.Transform
			x, y := float32(tr.Translation.X()), float32(tr.Translation.Y())
			vector.StrokeCircle(screen, x, y, radius(item.Sprite, tr), 1, ghostColor, true)
		}
		drawSprite(screen, item.Sprite, item.DisplayTransform.Transform())
	}

	if g.showUI {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func radius(s *demo.Sprite, tr easing.Transform) float32 {
	return float32(s.Radius * math.Abs(tr.Scale.X()))
}

// drawSprite draws a disc with a spoke showing its rotation.
func drawSprite(screen *ebiten.Image, s *demo.Sprite, tr easing.Transform) {
	x, y := float32(tr.Translation.X()), float32(tr.Translation.Y())
	r := radius(s, tr)
	vector.DrawFilledCircle(screen, x, y, r, s.Color, true)

	spoke := tr.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	vector.StrokeLine(screen, x, y, x+r*float32(spoke.X()), y+r*float32(spoke.Y()), 2, background, true)
}
