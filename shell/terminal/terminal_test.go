package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snake/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func screenText(screen tcell.Screen) string {
	_, height := screen.Size()
	lines := make([]string, height)
	for y := range height {
		lines[y] = rowText(screen, y)
	}
	return strings.Join(lines, "\n")
}

func TestRender(t *testing.T) {
	screen := newScreen(t)
	term := New(screen, snake.DefaultBoard())

	result := snake.TickResult{
		Status: snake.Running,
		Snake:  []snake.Position{{X: 200, Y: 240}, {X: 180, Y: 240}},
		Food:   snake.Position{X: 20, Y: 60},
		Score:  3,
	}
	require.NoError(t, term.Render(result))

	assert.Equal(t, "Current score: 3", rowText(screen, 0))

	head, _, style, _ := screen.GetContent(20, 12)
	assert.Equal(t, '█', head)
	assert.Equal(t, styleHead, style)
	body, _, _, _ := screen.GetContent(19, 12)
	assert.Equal(t, '▓', body)
	food, _, _, _ := screen.GetContent(2, 3)
	assert.Equal(t, '●', food)

	border, _, _, _ := screen.GetContent(50, 10)
	assert.Equal(t, '│', border)
}

func TestRenderSkipsOffBoardBlocks(t *testing.T) {
	screen := newScreen(t)
	term := New(screen, snake.DefaultBoard())

	result := snake.TickResult{
		Snake: []snake.Position{{X: -20, Y: 240}, {X: 0, Y: 240}},
		Food:  snake.Position{X: 20, Y: 60},
	}
	require.NoError(t, term.Render(result))

	body, _, _, _ := screen.GetContent(0, 12)
	assert.Equal(t, '▓', body)
}

func TestRenderGameOver(t *testing.T) {
	screen := newScreen(t)
	term := New(screen, snake.DefaultBoard())

	require.NoError(t, term.Render(snake.TickResult{Status: snake.Over, Score: 7}))

	text := screenText(screen)
	assert.Contains(t, text, "Game Over")
	assert.Contains(t, text, "Final score: 7")
	assert.NotContains(t, text, "Current score")
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want snake.Direction
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), snake.Up, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), snake.Left, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), snake.Right, true},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), snake.Down, true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := keyDirection(tt.ev)
		assert.Equal(t, tt.ok, ok, tt.ev.Name())
		assert.Equal(t, tt.want, got, tt.ev.Name())
	}

	assert.True(t, isQuitKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuitKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuitKey(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
}

func TestRunUntilQuit(t *testing.T) {
	screen := newScreen(t)
	game, err := snake.New(snake.WithSeed(1))
	require.NoError(t, err)
	term := New(screen, game.Board())

	over := make(chan struct{})
	notify := snake.RendererFunc(func(result snake.TickResult) error {
		if result.Status == snake.Over {
			close(over)
		}
		return nil
	})

	type outcome struct {
		result snake.TickResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := term.Run(context.Background(), game, time.Millisecond, notify)
		done <- outcome{result, err}
	}()

	select {
	case <-over:
	case <-time.After(5 * time.Second):
		t.Fatal("game did not end")
	}
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case out := <-done:
		require.NoError(t, out.err)
		assert.Equal(t, snake.Over, out.result.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("quit key was ignored")
	}
	assert.Contains(t, screenText(screen), "Game Over")
}
