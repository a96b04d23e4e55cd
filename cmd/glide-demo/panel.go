package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/easing"
	"github.com/plus3/glide/ecs"
	"github.com/plus3/glide/ecs/debugui"
)

// EasingPanel shows the controller counters and defaults, and the snapshots of the
// entity selected in the inspector.
type EasingPanel struct {
	game      *Game
	inspector *debugui.Inspector
}

func (p *EasingPanel) Title() string { return "Easing" }

func (p *EasingPanel) Draw(storage *ecs.Storage) {
	w := p.game.world
	stats := w.Controller.Stats()
	clock := w.Scheduler.Time()

	imgui.Text(fmt.Sprintf("Windows: %d", stats.Windows))
	imgui.Text(fmt.Sprintf("Invalidations: %d", stats.Invalidations))
	imgui.Text(fmt.Sprintf("Blended: %d", stats.Blended))
	imgui.ProgressBarV(float32(clock.OverstepFraction()), imgui.NewVec2(-1, 0), "overstep")

	imgui.Separator()
	defaults := w.Controller.Defaults()
	for _, ch := range easing.Channels {
		cc := defaults.Channel(ch)
		imgui.BulletText(fmt.Sprintf("%s: %s / %s", ch, cc.Mode, cc.Backend))
	}

	if imgui.Button("Teleport (T)") {
		w.Teleport()
	}
	imgui.SameLine()
	if imgui.Button("Cycle mode (M)") {
		w.CycleMode()
	}
	imgui.Checkbox("Ghosts (G)", &p.game.showGhosts)

	imgui.Separator()
	p.drawSelected(storage, w.Controller)
}

func (p *EasingPanel) drawSelected(storage *ecs.Storage, controller *easing.Controller) {
	id := p.inspector.Selected
	if id == 0 || !storage.Alive(id) {
		imgui.Text("Select an entity in the Entities window")
		return
	}

	cfg := controller.Resolve(ecs.ReadComponent[easing.Config](storage, id))
	es := ecs.ReadComponent[easing.Easing](storage, id)
	if es == nil {
		imgui.Text(fmt.Sprintf("Entity %d has no easing state", id))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d", id))
	drawChannel("Translation", cfg.Translation, &es.Translation, formatVec3)
	drawChannel("Rotation", cfg.Rotation, &es.Rotation, formatQuat)
	drawChannel("Scale", cfg.Scale, &es.Scale, formatVec3)

	if imgui.Button("Reset easing") {
		es.ResetAll()
	}
}

func drawChannel[V comparable](name string, cc easing.ChannelConfig, s *easing.EasingState[V], format func(V) string) {
	if !imgui.TreeNodeStr(fmt.Sprintf("%s (%s, %s)###%s", name, cc.Mode, cc.Backend, name)) {
		return
	}
	defer imgui.TreePop()

	start, end, ok := s.Pair()
	if !ok {
		imgui.Text("passthrough")
		return
	}
	imgui.Text("start " + format(start))
	imgui.Text("end   " + format(end))
	if v0, v1, ok := s.Tangents(); ok {
		imgui.Text("v0    " + formatVec3(v0))
		imgui.Text("v1    " + formatVec3(v1))
	}
}

func formatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

func formatQuat(q mgl64.Quat) string {
	return fmt.Sprintf("w=%.3f v=%s", q.W, formatVec3(q.V))
}
