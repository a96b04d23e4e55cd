package ebiten_test

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/ecs/debugui"
	debugui_ebiten "github.com/plus3/glide/ecs/debugui/ebiten"
)

// Game runs the scheduler once per Ebiten tick and draws imgui over the screen.
type Game struct {
	scheduler *ecs.Scheduler
	backend   debugui_ebiten.ImguiBackend
	stats     *debugui.SchedulerPanel
	last      time.Time
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last)
	g.last = now

	g.backend.Frame(func() {
		g.scheduler.Once(dt.Seconds())
	})
	g.stats.Record(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewImguiBackend("glide debug", 1280, 720)

	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[debugui.ImguiInputState](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	stats := debugui.NewSchedulerPanel(scheduler, 120)
	storage.Spawn(debugui.PanelItem{Panel: stats, Pos: imgui.NewVec2(10, 10), Size: imgui.NewVec2(420, 360)})
	storage.Spawn(debugui.PanelItem{Panel: debugui.NewInspector(50)})
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text("Hello from an entity")
			imgui.End()
		},
	})

	ebiten.SetTPS(ebiten.SyncWithFPS)
	game := &Game{scheduler: scheduler, backend: backend, stats: stats, last: time.Now()}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
