// Package window plays the game in a desktop window.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/snake/snake"
)

// Options configures a Window.
type Options struct {
	TicksPerSecond int

	// AssetDir holds snake.png and food.png. Blocks are drawn as filled
	// squares when it is empty.
	AssetDir string

	// Debug shows the ImGui debug windows next to the board.
	Debug bool

	// Renderers receive every snapshot after the window has taken it.
	Renderers []snake.Renderer
}

const (
	framesPerSecond = 60
	debugPanelWidth  = 380
	debugPanelHeight = 560
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorBorder     = color.RGBA{255, 255, 255, 255}
	colorHead       = color.RGBA{120, 230, 120, 255}
	colorBody       = color.RGBA{60, 180, 75, 255}
	colorFood       = color.RGBA{230, 60, 60, 255}
)

// Window is an ebiten.Game that drives a snake.Game.
type Window struct {
	game      *snake.Game
	board     snake.Board
	clock     *snake.Clock
	sprites   sprites
	renderers snake.Renderer
	result    snake.TickResult
	debug     *debugOverlay
	err       error
}

// New loads the assets and prepares the window. Asset errors abort startup.
func New(game *snake.Game, opts Options) (*Window, error) {
	w := &Window{
		game:      game,
		board:     game.Board(),
		clock:     snake.NewClock(opts.TicksPerSecond),
		renderers: snake.Renderers(opts.Renderers...),
		result:    game.Snapshot(),
	}

	if opts.AssetDir != "" {
		s, err := loadSprites(opts.AssetDir)
		if err != nil {
			return nil, err
		}
		w.sprites = s
	}

	if err := w.renderers.Render(w.result); err != nil {
		return nil, fmt.Errorf("render initial frame: %w", err)
	}

	if opts.Debug {
		w.debug = newDebugOverlay(game, windowSize(w.board, true))
	}
	return w, nil
}

// windowSize leaves room to the right of the board for the debug windows.
func windowSize(board snake.Board, debug bool) (int, int) {
	if debug {
		return board.Width + debugPanelWidth, max(board.Height, debugPanelHeight)
	}
	return board.Width, board.Height
}

// Run opens the window and blocks until the player closes it. It returns the
// last snapshot of the game.
func (w *Window) Run() (snake.TickResult, error) {
	width, height := windowSize(w.board, w.debug != nil)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Snake")
	ebiten.SetTPS(framesPerSecond)

	err := ebiten.RunGame(w)
	if w.err != nil {
		return w.result, w.err
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return w.result, fmt.Errorf("run window: %w", err)
	}
	return w.result, nil
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	captured := false
	if w.debug != nil {
		w.debug.update()
		captured = w.debug.wantsKeyboard()
	}

	if d, ok := pressedDirection(inpututil.IsKeyJustPressed); ok && !captured {
		w.game.SetDirection(d)
	}

	if w.result.Status == snake.Over {
		return nil
	}

	for range w.clock.Advance(time.Second / framesPerSecond) {
		w.result = w.game.Tick()
		if err := w.renderers.Render(w.result); err != nil {
			w.err = fmt.Errorf("render tick %d: %w", w.result.Tick, err)
			return ebiten.Termination
		}
		if w.result.Status == snake.Over {
			break
		}
	}
	return nil
}

// directionKeys lists the keys checked each frame, in priority order.
var directionKeys = []struct {
	key       ebiten.Key
	direction snake.Direction
}{
	{ebiten.KeyArrowUp, snake.Up},
	{ebiten.KeyW, snake.Up},
	{ebiten.KeyArrowDown, snake.Down},
	{ebiten.KeyS, snake.Down},
	{ebiten.KeyArrowLeft, snake.Left},
	{ebiten.KeyA, snake.Left},
	{ebiten.KeyArrowRight, snake.Right},
	{ebiten.KeyD, snake.Right},
}

func pressedDirection(justPressed func(ebiten.Key) bool) (snake.Direction, bool) {
	for _, k := range directionKeys {
		if justPressed(k.key) {
			return k.direction, true
		}
	}
	return 0, false
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if w.result.Status == snake.Over {
		w.drawGameOver(screen)
	} else {
		w.drawBoard(screen)
	}

	if w.debug != nil {
		w.debug.draw(screen)
	}
}

func (w *Window) drawBoard(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, scoreLabel(w.result.Score), 5, 2)

	x, y, width, height := borderRect(w.board)
	vector.StrokeRect(screen, x, y, width, height, 1, colorBorder, false)

	w.drawBlock(screen, w.result.Food, w.sprites.food, colorFood)
	for i, p := range w.result.Snake {
		c := colorBody
		if i == 0 {
			c = colorHead
		}
		w.drawBlock(screen, p, w.sprites.snake, c)
	}
}

func (w *Window) drawBlock(screen *ebiten.Image, p snake.Position, sprite *ebiten.Image, c color.Color) {
	x, y, size := blockRect(w.board, p)
	if sprite == nil {
		vector.DrawFilledRect(screen, x, y, size-1, size-1, c, false)
		return
	}

	bounds := sprite.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size)/float64(bounds.Dx()), float64(size)/float64(bounds.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(sprite, op)
}

// blockRect is the square drawn for the block at p. Blocks are centred on
// their position, which is what the border is laid out around.
func blockRect(board snake.Board, p snake.Position) (x, y, size float32) {
	size = float32(board.Block)
	return float32(p.X) - size/2, float32(p.Y) - size/2, size
}

func (w *Window) drawGameOver(screen *ebiten.Image) {
	lines := []string{"Game Over", scoreLabel(w.result.Score)}
	for i, line := range lines {
		x := (w.board.Width - len(line)*debugGlyphWidth) / 2
		y := w.board.Height/2 - debugGlyphHeight + i*debugGlyphHeight*2
		ebitenutil.DebugPrintAt(screen, line, x, y)
	}
}

// Size of a glyph of the ebitenutil debug font.
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.debug != nil {
		w.debug.layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w.board.Width, w.board.Height
}

func scoreLabel(score int) string {
	return fmt.Sprintf("Current score: %d", score)
}

// borderRect outlines the food area with half a block of padding.
func borderRect(board snake.Board) (x, y, width, height float32) {
	half := float32(board.Block) / 2
	area := board.FoodArea()

	left := float32(area.MinCol*board.Block) - half
	top := float32(board.TopMargin) + half/2
	right := float32((area.MaxCol+1)*board.Block) - half
	bottom := float32((area.MaxRow+1)*board.Block) - half
	return left, top, right - left, bottom - top
}
