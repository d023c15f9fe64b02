package snake

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/snake/ecs"
)

// Segment marks one block of the snake body. Order 0 is the head.
type Segment struct {
	Order int
}

// Food marks the food entity.
type Food struct{}

// Session holds the per-game counters.
type Session struct {
	Score  int
	Status Status
	Ticks  uint64

	// Ate is set on the tick the head reached the food.
	Ate bool
}

// Heading is the direction committed for the current tick.
type Heading struct {
	Direction Direction
}

// Occupancy counts snake segments per board cell.
type Occupancy struct {
	cells *intmap.Map[int, int]
}

func newOccupancy(board Board) Occupancy {
	return Occupancy{cells: intmap.New[int, int](board.Columns() * board.Rows())}
}

// Reset forgets every segment.
func (o *Occupancy) Reset() {
	o.cells.Clear()
}

// Add counts a segment at cell.
func (o *Occupancy) Add(cell int) {
	count, _ := o.cells.Get(cell)
	o.cells.Put(cell, count+1)
}

// Count returns the number of segments on cell.
func (o *Occupancy) Count(cell int) int {
	count, _ := o.cells.Get(cell)
	return count
}

// Len is the number of distinct occupied cells.
func (o *Occupancy) Len() int {
	return o.cells.Len()
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Segment](registry)
	ecs.RegisterComponent[Food](registry)
	ecs.RegisterComponent[Session](registry)
	ecs.RegisterComponent[Heading](registry)
	ecs.RegisterComponent[Board](registry)
	ecs.RegisterComponent[Occupancy](registry)
}
