// Package terminal plays the game full screen in a text terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snake/snake"
)

// cellsPerBlock is the number of terminal columns drawn per grid block, so
// blocks look roughly square.
const cellsPerBlock = 2

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// Terminal draws game snapshots on a tcell screen and reads arrow keys.
type Terminal struct {
	screen tcell.Screen
	board  snake.Board
	owned  bool
}

// Open takes over the controlling terminal. Close restores it.
func Open(board snake.Board) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	t := New(screen, board)
	t.owned = true
	return t, nil
}

// New draws on an initialised screen owned by the caller.
func New(screen tcell.Screen, board snake.Board) *Terminal {
	screen.SetStyle(styleDefault)
	screen.HideCursor()
	return &Terminal{screen: screen, board: board}
}

func (t *Terminal) Close() {
	if t.owned {
		t.screen.Fini()
	}
}

// Run plays game until it ends or the player quits. After Game Over the
// final screen stays up until a quit key is pressed. Extra renderers receive
// every snapshot after the screen has been drawn.
func (t *Terminal) Run(ctx context.Context, game *snake.Game, interval time.Duration, extra ...snake.Renderer) (snake.TickResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan snake.Direction, 8)
	go t.pollKeys(input, cancel)

	renderer := snake.Renderers(append([]snake.Renderer{t}, extra...)...)
	final, err := snake.NewRunner(game, renderer, interval).Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return final, nil
	}
	if err != nil {
		return final, err
	}

	<-ctx.Done()
	return final, nil
}

// pollKeys forwards direction keys until the screen is finalised. Quit keys
// call quit. Directions are dropped when the game is not reading them.
func (t *Terminal) pollKeys(input chan<- snake.Direction, quit func()) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			d, ok := keyDirection(ev)
			if !ok {
				if isQuitKey(ev) {
					quit()
				}
				continue
			}
			select {
			case input <- d:
			default:
			}

		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func keyDirection(ev *tcell.EventKey) (snake.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return snake.Up, true
	case tcell.KeyDown:
		return snake.Down, true
	case tcell.KeyLeft:
		return snake.Left, true
	case tcell.KeyRight:
		return snake.Right, true
	case tcell.KeyRune:
		return snake.ParseDirection(string(ev.Rune()))
	}
	return 0, false
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Render draws one snapshot.
func (t *Terminal) Render(result snake.TickResult) error {
	t.screen.Clear()

	if result.Status == snake.Over {
		t.drawGameOver(result)
		t.screen.Show()
		return nil
	}

	t.drawText(0, 0, fmt.Sprintf("Current score: %d", result.Score), styleText)
	t.drawBorder()

	t.drawBlock(result.Food, '●', styleFood)
	for i := len(result.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			t.drawBlock(result.Snake[i], '█', styleHead)
		} else {
			t.drawBlock(result.Snake[i], '▓', styleBody)
		}
	}

	t.screen.Show()
	return nil
}

// cell maps a board position to the left terminal cell of its block.
func (t *Terminal) cell(p snake.Position) (x, y int) {
	return p.X / t.board.Block * cellsPerBlock, p.Y / t.board.Block
}

func (t *Terminal) drawBlock(p snake.Position, r rune, style tcell.Style) {
	if !t.board.Contains(p) {
		return
	}
	x, y := t.cell(p)
	for i := range cellsPerBlock {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawBorder outlines the playfield one row below the score strip and one
// column to the right of the board.
func (t *Terminal) drawBorder() {
	right := t.board.Columns() * cellsPerBlock
	bottom := t.board.Rows()
	top := t.board.TopMargin / t.board.Block

	for y := top; y < bottom; y++ {
		t.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	for x := 0; x < right; x++ {
		t.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	t.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (t *Terminal) drawGameOver(result snake.TickResult) {
	width := t.board.Columns() * cellsPerBlock
	middle := t.board.Rows() / 2

	lines := []string{
		"Game Over",
		fmt.Sprintf("Final score: %d", result.Score),
		"press q to quit",
	}
	for i, line := range lines {
		t.drawText(max(0, (width-len(line))/2), middle-1+i, line, styleText)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
