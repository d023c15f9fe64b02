package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/plus3/snake/shell/sound"
	"github.com/plus3/snake/shell/terminal"
	"github.com/plus3/snake/shell/window"
	"github.com/plus3/snake/snake"
)

func run(ctx context.Context, cfg config) error {
	if cfg.Frontend == frontendTerminal {
		closeLog, err := redirectLog(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	game, err := snake.New(cfg.gameOptions()...)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	player := openSound(cfg.Mute)
	defer player.Close()

	log.Printf("Starting %s game at %d ticks per second", cfg.Frontend, cfg.TicksPerSecond)

	var final snake.TickResult
	switch cfg.Frontend {
	case frontendTerminal:
		final, err = runTerminal(ctx, cfg, game, player)
	default:
		final, err = runWindow(cfg, game, player)
	}
	if err != nil {
		return err
	}

	log.Printf("Game finished: %s, score %d, length %d", final.Status, final.Score, final.Len())
	return nil
}

func runTerminal(ctx context.Context, cfg config, game *snake.Game, player *sound.Player) (snake.TickResult, error) {
	term, err := terminal.Open(game.Board())
	if err != nil {
		return snake.TickResult{}, fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()

	return term.Run(ctx, game, snake.TickInterval(cfg.TicksPerSecond), player)
}

func runWindow(cfg config, game *snake.Game, player *sound.Player) (snake.TickResult, error) {
	w, err := window.New(game, window.Options{
		TicksPerSecond: cfg.TicksPerSecond,
		AssetDir:       cfg.AssetDir,
		Debug:          cfg.Debug,
		Renderers:      []snake.Renderer{player},
	})
	if err != nil {
		return snake.TickResult{}, fmt.Errorf("open window: %w", err)
	}
	return w.Run()
}

// openSound falls back to a silent player when the audio device is
// unavailable.
func openSound(mute bool) *sound.Player {
	if mute {
		return sound.Silent()
	}
	player, err := sound.New()
	if err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
	return player
}

// redirectLog sends log output to path, or discards it when path is empty,
// so log lines do not scribble over the terminal screen.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
