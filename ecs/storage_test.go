package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/snake/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Cell{X: 1, Y: 2}, &Step{DX: 1}, Weight(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.Greater(t, id.ArchetypeId(), uint32(0))

	cell := ecs.ReadComponent[Cell](storage, id)
	require.NotNil(t, cell)
	assert.Equal(t, Cell{X: 1, Y: 2}, *cell)

	weight := ecs.ReadComponent[Weight](storage, id)
	require.NotNil(t, weight)
	assert.Equal(t, Weight(32), *weight)
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.Panics(t, func() { storage.Spawn(Cell{}) })
}

func TestSpawnRejectsMapComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn(map[int]int{}) })
}

func TestSameShapeSharesArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Cell{X: 1}, Link{Order: 0})
	b := storage.Spawn(Link{Order: 1}, Cell{X: 2})
	c := storage.Spawn(Cell{X: 3})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())

	archetype := storage.GetArchetype(Cell{}, Link{})
	require.NotNil(t, archetype)
	assert.Equal(t, 2, archetype.Len())
	assert.Nil(t, storage.GetArchetype(Step{}))
}

func TestGetComponentMutatesInPlace(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Cell{X: 3, Y: 4})

	cell := storage.GetComponent(id, reflect.TypeOf(Cell{})).(*Cell)
	cell.X = 10

	assert.Equal(t, 10, ecs.ReadComponent[Cell](storage, id).X)
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Step{})))
	assert.Nil(t, ecs.ReadComponent[Step](storage, id))
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Cell{}, Marker{})

	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Cell{})))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Marker{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Step{})))
	assert.False(t, storage.HasComponent(ecs.NewEntityId(7, 7), reflect.TypeOf(Cell{})))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Cell{X: 1})
	second := storage.Spawn(Cell{X: 2})

	storage.Delete(first)
	assert.Nil(t, ecs.ReadComponent[Cell](storage, first))
	assert.Equal(t, 2, ecs.ReadComponent[Cell](storage, second).X)

	// freed slot is reused
	third := storage.Spawn(Cell{X: 3})
	assert.Equal(t, first, third)
	assert.Equal(t, 3, ecs.ReadComponent[Cell](storage, third).X)

	assert.NotPanics(t, func() { storage.Delete(ecs.NewEntityId(99, 0)) })
}

func TestPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Cell{X: 1})
	cell := ecs.ReadComponent[Cell](storage, id)

	for i := range 500 {
		storage.Spawn(Cell{X: i})
	}

	cell.X = 42
	assert.Equal(t, 42, ecs.ReadComponent[Cell](storage, id).X)
}

func TestSliceComponentsKeepData(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Trail{Cells: []Cell{{1, 1}, {2, 1}}})
	trail := ecs.ReadComponent[Trail](storage, id)
	require.NotNil(t, trail)

	trail.Cells = append(trail.Cells, Cell{3, 1})
	assert.Len(t, ecs.ReadComponent[Trail](storage, id).Cells, 3)
}

func TestArchetypeIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ids := []ecs.EntityId{
		storage.Spawn(Label{Value: "a"}),
		storage.Spawn(Label{Value: "b"}),
		storage.Spawn(Label{Value: "c"}),
	}
	storage.Delete(ids[1])

	archetype := storage.GetArchetype(Label{})
	require.NotNil(t, archetype)

	var seen []ecs.EntityId
	for id := range archetype.Iter() {
		seen = append(seen, id)
	}
	assert.Equal(t, []ecs.EntityId{ids[0], ids[2]}, seen)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(Label{})}, archetype.Types())
	assert.Equal(t, ids[0].ArchetypeId(), archetype.ID())
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	t.Run("read missing", func(t *testing.T) {
		var label *Label
		assert.False(t, storage.ReadSingleton(&label))
		assert.Nil(t, label)
	})

	t.Run("add and read", func(t *testing.T) {
		storage.AddSingleton(Label{Value: "board"})

		var label *Label
		require.True(t, storage.ReadSingleton(&label))
		assert.Equal(t, "board", label.Value)
	})

	t.Run("overwrite keeps pointer", func(t *testing.T) {
		var before *Label
		require.True(t, storage.ReadSingleton(&before))

		storage.AddSingleton(Label{Value: "replaced"})

		var after *Label
		require.True(t, storage.ReadSingleton(&after))
		assert.Same(t, before, after)
		assert.Equal(t, "replaced", before.Value)
	})

	t.Run("bad target panics", func(t *testing.T) {
		var label Label
		assert.Panics(t, func() { storage.ReadSingleton(&label) })
	})

	t.Run("singletons are not entities", func(t *testing.T) {
		stats := storage.CollectStats()
		assert.Equal(t, 0, stats.TotalEntityCount)
		assert.Equal(t, 1, stats.SingletonCount)
	})
}

func TestNewSingletonDoesNotOverwrite(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	first := ecs.NewSingleton[Weight](storage, 5)
	second := ecs.NewSingleton[Weight](storage, 9)

	assert.Equal(t, Weight(5), *second.Get())

	*first.Get() = 12
	assert.Equal(t, Weight(12), *second.Get())
	assert.True(t, second.Exists())
}

func TestUnboundSingleton(t *testing.T) {
	var s ecs.Singleton[Label]
	assert.Nil(t, s.Get())
	assert.False(t, s.Exists())

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	s.Init(storage)
	assert.Nil(t, s.Get())

	storage.AddSingleton(Label{Value: "late"})
	require.NotNil(t, s.Get())
	assert.Equal(t, "late", s.Get().Value)
}
