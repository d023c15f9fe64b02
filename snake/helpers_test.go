package snake

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := New(append([]Option{WithSeed(7)}, opts...)...)
	require.NoError(t, err)
	return g
}

// arrange replaces the snake, the food and the heading of g.
func arrange(t *testing.T, g *Game, body []Position, food Position, heading Direction) {
	t.Helper()
	require.NotEmpty(t, body)

	for _, segment := range slices.Collect(g.segments.Iter()) {
		g.storage.Delete(segment.EntityId)
	}
	for i, p := range body {
		g.storage.Spawn(p, Segment{Order: i})
	}
	for f := range g.food.Iter() {
		*f.Position = food
	}

	g.steering.current = heading
	g.steering.pending = heading
}

func row(y int, xs ...int) []Position {
	body := make([]Position, len(xs))
	for i, x := range xs {
		body[i] = Position{X: x, Y: y}
	}
	return body
}
