package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/glide/ecs"
)

// SchedulerPanel shows frame timing, the fixed clock, per-system timings and the
// shape of storage.
type SchedulerPanel struct {
	scheduler  *ecs.Scheduler
	frameTimes *History
	steps      *History
	lastSteps  uint64
}

func NewSchedulerPanel(scheduler *ecs.Scheduler, historyFrames int) *SchedulerPanel {
	return &SchedulerPanel{
		scheduler:  scheduler,
		frameTimes: NewHistory(historyFrames),
		steps:      NewHistory(historyFrames),
		lastSteps:  scheduler.Time().Steps(),
	}
}

func (p *SchedulerPanel) Title() string { return "Scheduler" }

// Record samples one rendered frame. Call it after Scheduler.Once.
func (p *SchedulerPanel) Record(frame time.Duration) {
	steps := p.scheduler.Time().Steps()
	p.frameTimes.Push(float32(frame.Seconds() * 1000))
	p.steps.Push(float32(steps - p.lastSteps))
	p.lastSteps = steps
}

func (p *SchedulerPanel) FrameTimes() *History { return p.frameTimes }

func (p *SchedulerPanel) StepsPerFrame() *History { return p.steps }

func (p *SchedulerPanel) Draw(storage *ecs.Storage) {
	clock := p.scheduler.Time()
	stats := p.scheduler.GetStats()

	avg := p.frameTimes.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Frames: %d  Avg frame: %.2f ms (%.0f FPS)", stats.Frames, avg, fps))
	imgui.Text(fmt.Sprintf("Timestep: %s  Fixed steps: %d", clock.Timestep, stats.FixedSteps))
	imgui.Text(fmt.Sprintf("Steps per frame: avg %.2f, max %.0f", p.steps.Average(), p.steps.Max()))
	imgui.ProgressBarV(float32(clock.OverstepFraction()), imgui.NewVec2(-1, 0),
		fmt.Sprintf("overstep %.2f", clock.OverstepFraction()))

	if frameTimes := p.frameTimes.Ordered(); len(frameTimes) > 0 {
		imgui.Text("Frame time (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &frameTimes[0], int32(len(frameTimes)))
	}

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Schedule")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.Schedule.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(formatMillis(sys.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(formatMillis(sys.MaxDuration))
		}
		imgui.EndTable()
	}

	storageStats := storage.CollectStats()
	if imgui.TreeNodeStr(fmt.Sprintf("Storage: %d entities in %d archetypes###storage",
		storageStats.TotalEntityCount, storageStats.ArchetypeCount)) {
		for _, arch := range storageStats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X  %d  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		for _, name := range storageStats.SingletonTypes {
			imgui.BulletText("singleton " + name)
		}
		imgui.TreePop()
	}
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}
