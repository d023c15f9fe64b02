// Package snake implements the rules of a single-player grid snake game.
//
// A Game owns the snake, the food, the score and the heading. Each call to
// Tick checks the current head for collisions, scores if the head is on the
// food, then moves the snake one block. Callers only ever receive copies of
// the game state as TickResult snapshots.
package snake

import (
	"math/rand/v2"
	"slices"

	"github.com/plus3/snake/ecs"
)

// Game is one snake game. SetDirection may be called from any goroutine;
// every other method must be called from the goroutine that ticks the game.
type Game struct {
	board     Board
	rng       *rand.Rand
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	steering  *steering

	session   *ecs.Singleton[Session]
	occupancy *ecs.Singleton[Occupancy]
	segments  *ecs.View[segmentEntity]
	food      *ecs.View[foodEntity]
}

type options struct {
	board Board
	rng   *rand.Rand
}

// Option configures a Game.
type Option func(*options)

// WithBoard sets the board geometry. The default is DefaultBoard.
func WithBoard(board Board) Option {
	return func(o *options) {
		o.board = board
	}
}

// WithRand sets the random source used for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed makes food placement reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// New starts a game with the initial snake heading right and the food on a
// free block. It fails only if the board is invalid.
func New(opts ...Option) (*Game, error) {
	o := options{board: DefaultBoard()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.board.Validate(); err != nil {
		return nil, err
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	g := &Game{
		board:    o.board,
		rng:      o.rng,
		storage:  storage,
		steering: newSteering(Right),
	}

	storage.AddSingleton(o.board)
	storage.AddSingleton(Heading{Direction: Right})
	storage.AddSingleton(newOccupancy(o.board))
	g.session = ecs.NewSingleton(storage, Session{Status: Running})
	g.occupancy = ecs.NewSingleton[Occupancy](storage)
	g.segments = ecs.NewView[segmentEntity](storage)
	g.food = ecs.NewView[foodEntity](storage)

	for i, p := range o.board.InitialSnake() {
		storage.Spawn(p, Segment{Order: i})
	}
	storage.Spawn(g.GenerateFoodPosition(), Food{})

	g.scheduler = ecs.NewScheduler(storage)
	g.scheduler.Register(&CollisionSystem{})
	g.scheduler.Register(&SteerSystem{steering: g.steering})
	g.scheduler.Register(&FeedSystem{})
	g.scheduler.Register(&MoveSystem{})
	g.scheduler.Register(&FoodSystem{place: g.GenerateFoodPosition})

	return g, nil
}

// SetDirection requests a new heading for the next tick. Invalid directions
// and the reverse of the most recently accepted direction are ignored. When
// several requests arrive between ticks the last accepted one wins.
func (g *Game) SetDirection(d Direction) {
	g.steering.request(d)
}

// Tick advances the game by one step. Once the game is over Tick changes
// nothing and returns a result with AlreadyOver set.
func (g *Game) Tick() TickResult {
	session := g.session.Get()
	if session.Status == Over {
		result := g.Snapshot()
		result.AlreadyOver = true
		return result
	}

	session.Ate = false
	session.Ticks++
	// One scheduler frame is one game tick.
	g.scheduler.Once(1)

	return g.Snapshot()
}

// GenerateFoodPosition returns a random block of the food area that no
// segment occupies. Sampling gives up after a bounded number of misses and
// falls back to scanning the area.
//
// When the snake covers every block of the food area there is no free block.
// GenerateFoodPosition then returns the current food position, which lies
// under the snake; this is the only case in which food and snake overlap.
// Use FindFoodPosition to detect it.
func (g *Game) GenerateFoodPosition() Position {
	p, _ := g.FindFoodPosition()
	return p
}

// FindFoodPosition is GenerateFoodPosition with ok reporting whether a free
// block was found. When ok is false the current food position is returned.
func (g *Game) FindFoodPosition() (p Position, ok bool) {
	occupancy := g.occupancy.Get()
	occupancy.Reset()
	for segment := range g.segments.Iter() {
		if g.board.Contains(*segment.Position) {
			occupancy.Add(g.board.Cell(*segment.Position))
		}
	}

	area := g.board.FoodArea()
	free := func(p Position) bool {
		return occupancy.Count(g.board.Cell(p)) == 0
	}

	for range area.Len() * sampleFactor {
		if p := area.Sample(g.rng); free(p) {
			return p, true
		}
	}
	for p := range area.All() {
		if free(p) {
			return p, true
		}
	}
	return g.foodPosition(), false
}

const sampleFactor = 4

func (g *Game) foodPosition() Position {
	for food := range g.food.Iter() {
		return *food.Position
	}
	return Position{}
}

func (g *Game) body() []Position {
	segments := orderedSegments(slices.Collect(g.segments.Iter()))
	body := make([]Position, len(segments))
	for i, segment := range segments {
		body[i] = *segment.Position
	}
	return body
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() TickResult {
	session := g.session.Get()
	return TickResult{
		Status: session.Status,
		Snake:  g.body(),
		Food:   g.foodPosition(),
		Score:  session.Score,
		Ate:    session.Ate,
		Tick:   session.Ticks,
	}
}

// Direction is the heading the snake last moved in.
func (g *Game) Direction() Direction {
	return g.steering.direction()
}

func (g *Game) Status() Status {
	return g.session.Get().Status
}

func (g *Game) Score() int {
	return g.session.Get().Score
}

func (g *Game) Board() Board {
	return g.board
}

// Stats reports scheduler timings and storage counts of the game's world.
func (g *Game) Stats() Stats {
	return Stats{
		Scheduler: g.scheduler.GetStats(),
		Storage:   g.storage.CollectStats(),
	}
}

// Stats is returned by Game.Stats.
type Stats struct {
	Scheduler *ecs.SchedulerStats
	Storage   ecs.StorageStats
}
