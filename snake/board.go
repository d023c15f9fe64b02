package snake

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
)

// ErrInvalidBoard is returned by Board.Validate.
var ErrInvalidBoard = errors.New("invalid board")

// Board is the playfield geometry in pixels. The band of TopMargin pixels at
// the top holds the score label and is out of bounds for the snake.
type Board struct {
	Width     int
	Height    int
	Block     int
	TopMargin int
}

// DefaultBoard is a 500x500 board of 20 pixel blocks with a one block score
// strip.
func DefaultBoard() Board {
	return Board{
		Width:     500,
		Height:    500,
		Block:     20,
		TopMargin: 20,
	}
}

// Validate reports whether the board can host a game. Every error wraps
// ErrInvalidBoard.
func (b Board) Validate() error {
	switch {
	case b.Block <= 0:
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalidBoard, b.Block)
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidBoard, b.Width, b.Height)
	case b.TopMargin < 0:
		return fmt.Errorf("%w: top margin %d is negative", ErrInvalidBoard, b.TopMargin)
	case b.Width%b.Block != 0 || b.Height%b.Block != 0 || b.TopMargin%b.Block != 0:
		return fmt.Errorf("%w: width, height and margin must be multiples of block size %d", ErrInvalidBoard, b.Block)
	}

	if cols := b.Columns(); cols < minColumns {
		return fmt.Errorf("%w: %d columns, need at least %d", ErrInvalidBoard, cols, minColumns)
	}
	if rows, top := b.Rows(), b.TopMargin/b.Block; rows/2 < top || rows < top+minPlayRows {
		return fmt.Errorf("%w: %d rows with a %d row margin leave no room for the snake", ErrInvalidBoard, rows, top)
	}
	return nil
}

const (
	minColumns  = 8
	minPlayRows = 4
)

// Columns is the number of blocks per row.
func (b Board) Columns() int {
	return b.Width / b.Block
}

// Rows is the number of block rows, including the margin.
func (b Board) Rows() int {
	return b.Height / b.Block
}

// Contains reports whether p is inside the playfield: x in [0, Width) and
// y in [TopMargin, Height).
func (b Board) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= b.TopMargin && p.Y < b.Height
}

// Cell returns the dense index of the block at p. p must be on the board.
func (b Board) Cell(p Position) int {
	return (p.Y/b.Block)*b.Columns() + p.X/b.Block
}

// FoodArea is the inclusive range of blocks food may be placed on. It keeps
// one block clear of every edge of the playfield.
func (b Board) FoodArea() Area {
	return Area{
		MinCol: 1,
		MaxCol: b.Columns() - 1,
		MinRow: b.TopMargin/b.Block + 2,
		MaxRow: b.Rows() - 1,
		Block:  b.Block,
	}
}

// InitialSnake is the four block snake every game starts with, heading
// right, with its head two fifths of the way across the middle row.
func (b Board) InitialSnake() []Position {
	head := Position{
		X: b.Columns() * 2 / 5 * b.Block,
		Y: b.Rows() / 2 * b.Block,
	}

	body := make([]Position, initialLength)
	for i := range body {
		body[i] = Position{X: head.X - i*b.Block, Y: head.Y}
	}
	return body
}

const initialLength = 4

// Area is an inclusive rectangle of grid blocks.
type Area struct {
	MinCol, MaxCol int
	MinRow, MaxRow int
	Block          int
}

// Len is the number of blocks in the area.
func (a Area) Len() int {
	if a.MaxCol < a.MinCol || a.MaxRow < a.MinRow {
		return 0
	}
	return (a.MaxCol - a.MinCol + 1) * (a.MaxRow - a.MinRow + 1)
}

// Contains reports whether p lies on a block of the area.
func (a Area) Contains(p Position) bool {
	if p.X%a.Block != 0 || p.Y%a.Block != 0 {
		return false
	}
	col, row := p.X/a.Block, p.Y/a.Block
	return col >= a.MinCol && col <= a.MaxCol && row >= a.MinRow && row <= a.MaxRow
}

// Sample returns a uniformly random block of the area.
func (a Area) Sample(rng *rand.Rand) Position {
	return Position{
		X: (a.MinCol + rng.IntN(a.MaxCol-a.MinCol+1)) * a.Block,
		Y: (a.MinRow + rng.IntN(a.MaxRow-a.MinRow+1)) * a.Block,
	}
}

// All yields every block of the area in row-major order.
func (a Area) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for row := a.MinRow; row <= a.MaxRow; row++ {
			for col := a.MinCol; col <= a.MaxCol; col++ {
				if !yield(Position{X: col * a.Block, Y: row * a.Block}) {
					return
				}
			}
		}
	}
}
