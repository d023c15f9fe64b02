package ecs_test

import "github.com/plus3/snake/ecs"

// Grid-flavoured test components.
type Cell struct {
	X, Y int
}

type Step struct {
	DX, DY int
}

type Link struct {
	Order int
}

type Label struct {
	Value string
}

type Marker struct{}

type Weight int32

type Trail struct {
	Cells []Cell
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Step](registry)
	ecs.RegisterComponent[Link](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Weight](registry)
	ecs.RegisterComponent[Trail](registry)
	return registry
}
