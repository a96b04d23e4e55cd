// Package debugui draws Dear ImGui debug windows for ECS applications.
// Windows are ordinary entities: spawn an ImguiItem for a free-form render
// function or a PanelItem for one of the panels in this package.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glide/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// Panel draws the body of one debug window.
type Panel interface {
	Title() string
	Draw(storage *ecs.Storage)
}

// PanelItem places a Panel on screen. A zero Size lets imgui pick the layout.
type PanelItem struct {
	Panel Panel
	Pos   imgui.Vec2
	Size  imgui.Vec2
}

func (p *PanelItem) draw(storage *ecs.Storage) {
	if p.Size.X > 0 && p.Size.Y > 0 {
		imgui.SetNextWindowPosV(p.Pos, imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(p.Size, imgui.CondOnce)
	}
	if imgui.BeginV(p.Panel.Title(), nil, imgui.WindowFlagsNone) {
		p.Panel.Draw(storage)
	}
	imgui.End()
}

// ImguiInputState tracks whether imgui is consuming input this frame.
// Gameplay input handlers should check it before reacting to the keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Register adds the debugui component types to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[PanelItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// ImguiSystem queues every ImguiItem and PanelItem for drawing and refreshes the
// ImguiInputState singleton when one exists. Drawing is deferred to the command
// flush so panels may read and write storage freely.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	Panels     ecs.Query[struct{ *PanelItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
	for panel := range i.Panels.Values() {
		p := *panel.PanelItem
		frame.Commands.Defer(func() { p.draw(frame.Storage) })
	}
}
