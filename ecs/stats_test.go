package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")
	doomed := storage.Spawn(300.0, "gone")
	storage.Delete(doomed)

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
		assert.Len(t, arch.ComponentTypes, 2)
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, counts)
	assert.Less(t, stats.ArchetypeBreakdown[0].ID, stats.ArchetypeBreakdown[1].ID)
}

func TestBlockStorageReuse(t *testing.T) {
	cs := &blockStorage[int]{}

	for i := range blockSize + 3 {
		assert.Equal(t, i, cs.Append(i))
	}
	assert.Equal(t, blockSize+3, cs.Len())
	assert.Len(t, cs.blocks, 2)

	cs.Delete(5)
	cs.Delete(5)
	assert.Equal(t, blockSize+2, cs.Len())
	assert.Nil(t, cs.Get(5))

	assert.Equal(t, 5, cs.Append(99))
	assert.Equal(t, 99, *cs.Get(5).(*int))
	assert.Equal(t, -1, cs.Append("wrong type"))
	assert.Nil(t, cs.Get(-1))
	assert.Nil(t, cs.Get(1000))
}
