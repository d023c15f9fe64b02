package main

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/snake/snake"
)

type config struct {
	Games          int
	Seed           uint64
	MaxTicks       int
	GCPauseMetrics bool
}

func (c config) validate() error {
	if c.Games <= 0 {
		return errors.New("games must be positive")
	}
	if c.MaxTicks <= 0 {
		return errors.New("max-ticks must be positive")
	}
	return nil
}

// run plays every game to the end and collects the report.
func run(cfg config) (*Report, error) {
	report := &Report{
		Games:          cfg.Games,
		Seed:           cfg.Seed,
		MaxTicks:       cfg.MaxTicks,
		GCPauseMetrics: cfg.GCPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0, cfg.Games*64),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	for i := range cfg.Games {
		game, err := snake.New(snake.WithSeed(cfg.Seed + uint64(i)))
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		report.addGame(play(game, cfg.MaxTicks, &report.TickTime))
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Score.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}

// play drives game with the autopilot until it ends or maxTicks have run,
// recording the duration of every tick.
func play(game *snake.Game, maxTicks int, ticks *Stats) snake.TickResult {
	state := game.Snapshot()
	board := game.Board()

	for range maxTicks {
		game.SetDirection(autopilot(board, state, game.Direction()))

		tickStart := time.Now()
		state = game.Tick()
		ticks.Samples = append(ticks.Samples, time.Since(tickStart))

		if state.Status == snake.Over {
			break
		}
	}
	return state
}

// autopilot picks the direction that moves the head closest to the food
// without leaving the board or running into the body. When every move is
// fatal it keeps the current heading.
func autopilot(board snake.Board, state snake.TickResult, heading snake.Direction) snake.Direction {
	head := state.Head()
	best, bestDistance := heading, -1

	for _, d := range []snake.Direction{snake.Up, snake.Down, snake.Left, snake.Right} {
		if d == heading.Opposite() {
			continue
		}

		next := head.Step(d, board.Block)
		if !board.Contains(next) || hitsBody(state.Snake, next) {
			continue
		}

		distance := abs(next.X-state.Food.X) + abs(next.Y-state.Food.Y)
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = d, distance
		}
	}
	return best
}

// hitsBody reports whether p is a segment that will still be there after
// the next move. The tail moves out of the way.
func hitsBody(body []snake.Position, p snake.Position) bool {
	for _, segment := range body[:len(body)-1] {
		if segment == p {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
