package snake

import "strings"

// Position is the pixel coordinate of one grid block. Valid positions are
// multiples of the board's block size.
type Position struct {
	X, Y int
}

// Step returns the position one block away in direction d.
func (p Position) Step(d Direction, block int) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx*block, Y: p.Y + dy*block}
}

// Direction is the heading of the snake. The zero value is not a direction
// and is ignored by Game.SetDirection.
type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the reverse heading. Invalid directions return themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Delta is the unit grid step of d. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "None"
}

// ParseDirection maps a key name to a direction. Arrow key names and WASD
// are accepted in any case.
func ParseDirection(key string) (Direction, bool) {
	switch strings.ToLower(key) {
	case "up", "w":
		return Up, true
	case "down", "s":
		return Down, true
	case "left", "a":
		return Left, true
	case "right", "d":
		return Right, true
	}
	return 0, false
}

// Status is the lifecycle state of a game. It only ever moves from Running
// to Over.
type Status uint8

const (
	Running Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "Over"
	}
	return "Running"
}
