package debugui

import (
	"testing"
	"time"

	"github.com/plus3/snake/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFrameTimer(t *testing.T) {
	timer := NewFrameTimer()
	time.Sleep(5 * time.Millisecond)

	first := timer.GetDeltaTime()
	assert.GreaterOrEqual(t, first, float32(0.005))
	assert.Less(t, timer.GetDeltaTime(), first)
}

func TestTickCount(t *testing.T) {
	assert.Equal(t, int64(0), tickCount(&ecs.SchedulerStats{}))

	stats := &ecs.SchedulerStats{
		Systems: []ecs.SystemStats{{Name: "A", ExecutionCount: 12}, {Name: "B", ExecutionCount: 12}},
	}
	assert.Equal(t, int64(12), tickCount(stats))
}

func TestRegisterComponents(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	id := storage.Spawn(ImguiItem{Render: func() {}})
	item := ecs.ReadComponent[ImguiItem](storage, id)
	if assert.NotNil(t, item) {
		assert.NotNil(t, item.Render)
	}
}

func TestMicros(t *testing.T) {
	assert.InDelta(t, 1500.0, micros(1500*time.Microsecond), 1e-9)
}
