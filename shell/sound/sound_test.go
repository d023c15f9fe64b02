package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/snake/snake"
	"github.com/stretchr/testify/assert"
)

// drain reads s to the end and returns the number of samples and the
// largest absolute amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			peak = max(peak, sample[0], -sample[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestSounds(t *testing.T) {
	n, peak := drain(eatSound(sampleRate))
	assert.Equal(t, sampleRate.N(50*time.Millisecond)+sampleRate.N(70*time.Millisecond), n)
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 1.0)

	n, peak = drain(gameOverSound(sampleRate))
	assert.Equal(t, sampleRate.N(600*time.Millisecond), n)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestPlayerRender(t *testing.T) {
	var played int
	p := &Player{rate: sampleRate, play: func(beep.Streamer) { played++ }}

	assert.NoError(t, p.Render(snake.TickResult{Status: snake.Running}))
	assert.Equal(t, 0, played)

	assert.NoError(t, p.Render(snake.TickResult{Status: snake.Running, Ate: true}))
	assert.Equal(t, 1, played)

	assert.NoError(t, p.Render(snake.TickResult{Status: snake.Over}))
	assert.Equal(t, 2, played)

	assert.NoError(t, p.Render(snake.TickResult{Status: snake.Over, AlreadyOver: true}))
	assert.Equal(t, 2, played)
}

func TestSilentPlayer(t *testing.T) {
	p := Silent()
	assert.NoError(t, p.Render(snake.TickResult{Status: snake.Over}))
	p.Close()
}
