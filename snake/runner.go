package snake

import (
	"context"
	"fmt"
	"time"
)

// Renderer draws game snapshots. Render is called once with the initial
// state, then after every tick; the final call carries an Over result.
type Renderer interface {
	Render(result TickResult) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(result TickResult) error

func (f RendererFunc) Render(result TickResult) error {
	return f(result)
}

// Renderers fans every snapshot out to each renderer in order, stopping at
// the first error.
func Renderers(renderers ...Renderer) Renderer {
	return RendererFunc(func(result TickResult) error {
		for _, r := range renderers {
			if err := r.Render(result); err != nil {
				return err
			}
		}
		return nil
	})
}

// Runner ticks a game on a wall clock ticker.
type Runner struct {
	game     *Game
	renderer Renderer
	interval time.Duration
}

func NewRunner(game *Game, renderer Renderer, interval time.Duration) *Runner {
	return &Runner{
		game:     game,
		renderer: renderer,
		interval: interval,
	}
}

// Run plays the game until it is over, the context is cancelled or the
// renderer fails. Directions read from input are applied as they arrive; a
// closed input channel is ignored. Run returns the last snapshot taken.
func (r *Runner) Run(ctx context.Context, input <-chan Direction) (TickResult, error) {
	result := r.game.Snapshot()
	if err := r.renderer.Render(result); err != nil {
		return result, fmt.Errorf("render initial frame: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()

		case d, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			r.game.SetDirection(d)

		case <-ticker.C:
			result = r.game.Tick()
			if err := r.renderer.Render(result); err != nil {
				return result, fmt.Errorf("render tick %d: %w", result.Tick, err)
			}
			if result.Status == Over {
				return result, nil
			}
		}
	}
}
