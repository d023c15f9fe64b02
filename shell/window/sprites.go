package window

import (
	"fmt"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// sprites are the optional block images. Nil images are drawn as squares.
type sprites struct {
	snake *ebiten.Image
	food  *ebiten.Image
}

const (
	snakeSprite = "snake.png"
	foodSprite  = "food.png"
)

func loadSprites(dir string) (sprites, error) {
	var s sprites
	var err error

	if s.snake, err = loadImage(filepath.Join(dir, snakeSprite)); err != nil {
		return sprites{}, err
	}
	if s.food, err = loadImage(filepath.Join(dir, foodSprite)); err != nil {
		return sprites{}, err
	}
	return s, nil
}

func loadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}
