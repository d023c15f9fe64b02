package snake

// TickResult is a snapshot of a game after a tick. Snake is a copy, head
// first.
type TickResult struct {
	Status Status
	Snake  []Position
	Food   Position
	Score  int

	// Ate is set when the head reached the food on this tick. The snake is
	// one segment longer and the food has moved.
	Ate bool

	// Tick counts the ticks that ran while the game was running.
	Tick uint64

	// AlreadyOver is set when Tick was called on a finished game.
	AlreadyOver bool
}

// Head returns the first segment of the snake.
func (r TickResult) Head() Position {
	if len(r.Snake) == 0 {
		return Position{}
	}
	return r.Snake[0]
}

// Len is the length of the snake.
func (r TickResult) Len() int {
	return len(r.Snake)
}
