package ecs_test

import (
	"testing"

	"github.com/plus3/snake/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Cell{X: 1, Y: 2}, Step{DX: 1})
	storage.Spawn(Cell{X: 3, Y: 4}, Step{DY: 1})
	storage.Spawn(Cell{X: 5, Y: 6}, Step{DX: -1}, Marker{})
	storage.Spawn(Cell{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Cell
		*Step
	}](storage)

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[struct{ *Cell }](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
	})

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())

		count := 0
		for range query.Iter() {
			count++
		}
		assert.Equal(t, 3, count)
	})

	t.Run("cache is a snapshot", func(t *testing.T) {
		query.Execute()
		storage.Spawn(Cell{}, Step{})

		assert.Equal(t, 3, query.Len())

		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Cell{}, Step{}, Label{Value: "new shape"})
		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("pointers alias storage", func(t *testing.T) {
		query.Execute()
		for item := range query.Iter() {
			item.Cell.X = 100
		}

		view := ecs.NewView[struct {
			*Cell
			*Step
		}](storage)
		for item := range view.Iter() {
			assert.Equal(t, 100, item.Cell.X)
		}
	})
}
