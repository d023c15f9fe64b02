package snake

import (
	"slices"
	"sync"

	"github.com/plus3/snake/ecs"
)

type segmentEntity struct {
	ecs.EntityId
	*Position
	*Segment
}

type foodEntity struct {
	*Position
	*Food
}

// orderedSegments returns the snake head first.
func orderedSegments(segments []segmentEntity) []segmentEntity {
	slices.SortFunc(segments, func(a, b segmentEntity) int {
		return a.Order - b.Order
	})
	return segments
}

// steering is the pending direction slot shared with input goroutines.
type steering struct {
	mu      sync.Mutex
	current Direction
	pending Direction
}

func newSteering(initial Direction) *steering {
	return &steering{current: initial, pending: initial}
}

// request stores d as the next heading unless it reverses the most recently
// accepted direction.
func (s *steering) request(d Direction) bool {
	if !d.Valid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d == s.pending.Opposite() {
		return false
	}
	s.pending = d
	return true
}

func (s *steering) commit() Direction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.pending
	return s.current
}

func (s *steering) direction() Direction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// SteerSystem commits the pending direction for this tick. Nothing is
// committed on the tick the game ends.
type SteerSystem struct {
	Heading ecs.Singleton[Heading]
	Session ecs.Singleton[Session]

	steering *steering
}

func (s *SteerSystem) Execute(frame *ecs.UpdateFrame) {
	heading := s.Heading.Get()
	session := s.Session.Get()
	if heading == nil || session == nil || session.Status == Over {
		return
	}
	heading.Direction = s.steering.commit()
}

// CollisionSystem rebuilds the occupancy map and ends the game when the
// current head is off the board or on another segment. It runs before the
// snake moves.
type CollisionSystem struct {
	Segments  ecs.Query[segmentEntity]
	Board     ecs.Singleton[Board]
	Occupancy ecs.Singleton[Occupancy]
	Session   ecs.Singleton[Session]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	board := s.Board.Get()
	occupancy := s.Occupancy.Get()
	session := s.Session.Get()
	if board == nil || occupancy == nil || session == nil {
		return
	}

	var head Position
	occupancy.Reset()
	for segment := range s.Segments.Iter() {
		if segment.Order == 0 {
			head = *segment.Position
		}
		if board.Contains(*segment.Position) {
			occupancy.Add(board.Cell(*segment.Position))
		}
	}

	if !board.Contains(head) || occupancy.Count(board.Cell(head)) > 1 {
		session.Status = Over
	}
}

// FeedSystem scores when the head is on the food.
type FeedSystem struct {
	Segments ecs.Query[segmentEntity]
	Food     ecs.Query[foodEntity]
	Session  ecs.Singleton[Session]
}

func (s *FeedSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || session.Status == Over {
		return
	}

	var head Position
	for segment := range s.Segments.Iter() {
		if segment.Order == 0 {
			head = *segment.Position
			break
		}
	}

	for food := range s.Food.Iter() {
		if *food.Position == head {
			session.Score++
			session.Ate = true
		}
	}
}

// MoveSystem advances the snake one block. On a feeding tick the tail is
// duplicated first, so the snake ends the tick one segment longer.
type MoveSystem struct {
	Segments ecs.Query[segmentEntity]
	Heading  ecs.Singleton[Heading]
	Board    ecs.Singleton[Board]
	Session  ecs.Singleton[Session]

	body []segmentEntity
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	heading := s.Heading.Get()
	board := s.Board.Get()
	if session == nil || heading == nil || board == nil || session.Status == Over {
		return
	}

	s.body = orderedSegments(slices.AppendSeq(s.body[:0], s.Segments.Iter()))
	if len(s.body) == 0 {
		return
	}

	if session.Ate {
		tail := s.body[len(s.body)-1]
		frame.Commands.Spawn(*tail.Position, Segment{Order: len(s.body)})
	}

	for i := len(s.body) - 1; i > 0; i-- {
		*s.body[i].Position = *s.body[i-1].Position
	}
	head := s.body[0].Position
	*head = head.Step(heading.Direction, board.Block)
}

// FoodSystem moves the food after it has been eaten. Placement is deferred
// until the grown snake has been spawned.
type FoodSystem struct {
	Food    ecs.Query[foodEntity]
	Session ecs.Singleton[Session]

	place func() Position
}

func (s *FoodSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil || !session.Ate || session.Status == Over {
		return
	}

	for food := range s.Food.Iter() {
		position := food.Position
		frame.Commands.Defer(func() {
			*position = s.place()
		})
	}
}
