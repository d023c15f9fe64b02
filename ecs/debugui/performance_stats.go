package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/snake/ecs"
)

// PerformanceWindow shows frame times plus per-system timings and storage
// counts of a watched ECS world.
type PerformanceWindow struct {
	x, y          float32
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

// NewPerformanceWindow places the window at (x, y) on first use and keeps
// historyFrames frame times for its plot.
func NewPerformanceWindow(x, y float32, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		x:             x,
		y:             y,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		timer:         NewFrameTimer(),
	}
}

// Render draws the window. It must be called between an ImGui backend's
// BeginFrame and EndFrame.
func (ps *PerformanceWindow) Render(scheduler *ecs.SchedulerStats, storage ecs.StorageStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(ps.x, ps.y), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = ps.timer.GetDeltaTime() * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms", avgFrameTime))
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entities: %d", storage.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", storage.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", storage.SingletonCount))

	if scheduler != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Ticks: %d", tickCount(scheduler)))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("Systems", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg (us)")
			imgui.TableSetupColumn("Max (us)")
			imgui.TableHeadersRow()

			for _, sys := range scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.1f", micros(sys.AvgDuration)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.1f", micros(sys.MaxDuration)))
			}

			imgui.EndTable()
		}
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range storage.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X %v: %d", arch.ID, arch.ComponentTypes, arch.EntityCount))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range storage.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// tickCount is the number of scheduler frames, read off the first system.
func tickCount(stats *ecs.SchedulerStats) int64 {
	if len(stats.Systems) == 0 {
		return 0
	}
	return stats.Systems[0].ExecutionCount
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// FrameTimer measures wall time between successive calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
