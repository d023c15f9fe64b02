package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/plus3/snake/snake"
)

const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

var errUnknownFrontend = errors.New("unknown frontend")

type config struct {
	Frontend       string
	TicksPerSecond int
	Board          snake.Board
	Seed           uint64
	AssetDir       string
	Debug          bool
	Mute           bool
	LogFile        string
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	defaults := snake.DefaultBoard()

	var cfg config
	fs.StringVar(&cfg.Frontend, "frontend", frontendWindow, "Where to play: window or terminal.")
	fs.IntVar(&cfg.TicksPerSecond, "tps", snake.DefaultTicksPerSecond, "Game ticks per second.")
	fs.IntVar(&cfg.Board.Width, "width", defaults.Width, "Board width in pixels.")
	fs.IntVar(&cfg.Board.Height, "height", defaults.Height, "Board height in pixels.")
	fs.IntVar(&cfg.Board.Block, "block", defaults.Block, "Block size in pixels.")
	fs.IntVar(&cfg.Board.TopMargin, "margin", defaults.TopMargin, "Height of the score strip in pixels.")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Seed for food placement. Zero picks a random seed.")
	fs.StringVar(&cfg.AssetDir, "assets", "", "Directory with snake.png and food.png (window only).")
	fs.BoolVar(&cfg.Debug, "debug", false, "Show the debug windows (window only).")
	fs.BoolVar(&cfg.Mute, "mute", false, "Disable sound.")
	fs.StringVar(&cfg.LogFile, "log", "", "Log file for the terminal frontend. Logs are discarded when empty.")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.Frontend {
	case frontendWindow, frontendTerminal:
	default:
		return fmt.Errorf("%w %q", errUnknownFrontend, c.Frontend)
	}

	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TicksPerSecond)
	}
	if err := c.Board.Validate(); err != nil {
		return err
	}
	return nil
}

func (c config) gameOptions() []snake.Option {
	opts := []snake.Option{snake.WithBoard(c.Board)}
	if c.Seed != 0 {
		opts = append(opts, snake.WithSeed(c.Seed))
	}
	return opts
}
