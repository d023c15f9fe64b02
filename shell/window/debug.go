package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/snake/ecs"
	"github.com/plus3/snake/ecs/debugui"
	debugui_ebiten "github.com/plus3/snake/ecs/debugui/ebiten"
	"github.com/plus3/snake/snake"
)

// debugOverlay is a small ECS world of its own whose entities are the ImGui
// windows drawn over the game.
type debugOverlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
}

func newDebugOverlay(game *snake.Game, width, height int) *debugOverlay {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	d := &debugOverlay{
		storage: storage,
		backend: ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend("Snake", width, height)),
		input:   ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	panelX := float32(game.Board().Width + 10)
	perf := debugui.NewPerformanceWindow(panelX, 10, 120)
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			stats := game.Stats()
			perf.Render(stats.Scheduler, stats.Storage)
		},
	})
	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			renderSession(game.Snapshot(), game.Direction(), panelX, 340)
		},
	})

	d.scheduler = ecs.NewScheduler(storage)
	d.scheduler.Register(&debugui.ImguiSystem{})
	return d
}

func (d *debugOverlay) update() {
	backend := d.backend.Get()
	backend.BeginFrame()
	d.scheduler.Once(1.0 / framesPerSecond)
	backend.EndFrame()
}

func (d *debugOverlay) wantsKeyboard() bool {
	return d.input.Get().WantCaptureKeyboard
}

func (d *debugOverlay) draw(screen *ebiten.Image) {
	d.backend.Get().Draw(screen)
}

func (d *debugOverlay) layout(width, height int) {
	d.backend.Get().Layout(width, height)
}

func renderSession(state snake.TickResult, heading snake.Direction, x, y float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(x, y), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 200), imgui.CondOnce)

	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Status: %s", state.Status))
	imgui.Text(fmt.Sprintf("Tick: %d", state.Tick))
	imgui.Text(fmt.Sprintf("Score: %d", state.Score))
	imgui.Text(fmt.Sprintf("Length: %d", state.Len()))
	imgui.Text(fmt.Sprintf("Heading: %s", heading))
	imgui.Separator()
	head := state.Head()
	imgui.Text(fmt.Sprintf("Head: (%d, %d)", head.X, head.Y))
	imgui.Text(fmt.Sprintf("Food: (%d, %d)", state.Food.X, state.Food.Y))

	imgui.End()
}
