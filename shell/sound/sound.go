// Package sound plays short tones for game events.
package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/snake/snake"
)

const sampleRate = beep.SampleRate(44100)

// Player renders game events as sound. A Player whose speaker could not be
// opened is silent.
type Player struct {
	rate beep.SampleRate
	play func(beep.Streamer)
}

// New opens the default audio device.
func New() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return Silent(), fmt.Errorf("init speaker: %w", err)
	}
	return &Player{
		rate: sampleRate,
		play: func(s beep.Streamer) { speaker.Play(s) },
	}, nil
}

// Silent returns a player that plays nothing.
func Silent() *Player {
	return &Player{rate: sampleRate}
}

// Render plays a chirp when the snake eats and a falling tune when the game
// ends. It never fails.
func (p *Player) Render(result snake.TickResult) error {
	if p.play == nil || result.AlreadyOver {
		return nil
	}

	switch {
	case result.Status == snake.Over:
		p.play(gameOverSound(p.rate))
	case result.Ate:
		p.play(eatSound(p.rate))
	}
	return nil
}

// Close releases the audio device.
func (p *Player) Close() {
	if p.play != nil {
		speaker.Close()
		p.play = nil
	}
}

func eatSound(rate beep.SampleRate) beep.Streamer {
	return volume(beep.Seq(
		tone(rate, 660, 50*time.Millisecond),
		tone(rate, 990, 70*time.Millisecond),
	), 0.3)
}

func gameOverSound(rate beep.SampleRate) beep.Streamer {
	return volume(beep.Seq(
		tone(rate, 440, 150*time.Millisecond),
		tone(rate, 330, 150*time.Millisecond),
		tone(rate, 220, 300*time.Millisecond),
	), 0.4)
}

func tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

func volume(s beep.Streamer, gain float64) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
