// Package engine owns the shared simulation state behind the lighting
// daemon: the ambient/snake/game-over mode machine, the input history used
// for cheat detection, and the per-cell color synthesis the render loop
// samples every tick.
package engine

import (
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/mariq/rgbctl/internal/keymap"
	"github.com/mariq/rgbctl/internal/logging"
)

var logger = logging.New("engine")

type Mode int

const (
	ModeAmbient Mode = iota
	ModeSnake
	ModeGameOver
)

type Point struct {
	X, Y int
}

// ripple is one expanding ring spawned by a key press in ambient mode.
// Ages are in ticks; a ripple is purged the tick its age reaches maxAge.
type ripple struct {
	x, y   float64
	age    float64
	maxAge float64
}

const (
	cheatWindowSize   = 6
	rippleMaxAge      = 12.0
	timeTickIncrement = 0.15

	initialStepInterval   = 150 * time.Millisecond
	stepIntervalDecrement = 2 * time.Millisecond
	minStepInterval       = 50 * time.Millisecond

	gameOverTimeout = 5 * time.Second
)

// cheatSequence must fill the whole input window exactly; the detector is
// an exact window match, not a substring search.
var cheatSequence = []uint16{
	keymap.KeyUp, keymap.KeyDown, keymap.KeyLeft,
	keymap.KeyRight, keymap.KeyUp, keymap.KeyDown,
}

// State is the single shared simulation aggregate. The input goroutine
// mutates it through HandleKeyPress, the render loop through Tick and the
// frame snapshot methods; one mutex covers everything so mode changes and
// snake moves are never observed half-done.
type State struct {
	mu    sync.Mutex
	clock Clock
	rng   *rand.Rand

	width  int
	height int

	mode         Mode
	inputHistory []uint16
	snake        []Point
	food         Point
	direction    Point
	stepInterval time.Duration
	lastStep     time.Time
	ripples      []ripple
	timeTick     float64
	gameOverAt   time.Time
}

// New creates ambient-mode state over a width x height grid with the system
// clock and a time-seeded random source.
func New(width, height int) *State {
	return NewWithDeps(width, height, systemClock{}, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithDeps is New with an explicit clock and random source, for tests.
func NewWithDeps(width, height int, clock Clock, rng *rand.Rand) *State {
	return &State{
		clock:        clock,
		rng:          rng,
		width:        width,
		height:       height,
		mode:         ModeAmbient,
		direction:    Point{X: 1, Y: 0},
		stepInterval: initialStepInterval,
		lastStep:     clock.Now(),
	}
}

func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// HandleKeyPress records the key in the cheat window, then dispatches to the
// active mode. A full-window cheat match always wins, regardless of mode.
func (s *State) HandleKeyPress(code uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inputHistory) >= cheatWindowSize {
		s.inputHistory = s.inputHistory[1:]
	}
	s.inputHistory = append(s.inputHistory, code)

	if slices.Equal(s.inputHistory, cheatSequence) {
		logger.Info("Cheat code entered: snake mode")
		s.resetSnake()
		s.inputHistory = s.inputHistory[:0]
		return
	}

	switch s.mode {
	case ModeAmbient:
		x, y := keymap.ToGrid(code, s.width, s.height, s.rng)
		s.ripples = append(s.ripples, ripple{
			x:      float64(x),
			y:      float64(y),
			maxAge: rippleMaxAge,
		})
	case ModeSnake:
		s.steerSnake(code)
	case ModeGameOver:
		// Input is dead until the blink times out.
	}
}

// steerSnake applies a direction key, ignoring 180-degree reversals so the
// snake cannot fold back onto its own neck in one step.
func (s *State) steerSnake(code uint16) {
	var next Point
	switch code {
	case keymap.KeyUp, keymap.KeyW:
		next = Point{X: 0, Y: -1}
	case keymap.KeyDown, keymap.KeyS:
		next = Point{X: 0, Y: 1}
	case keymap.KeyLeft, keymap.KeyA:
		next = Point{X: -1, Y: 0}
	case keymap.KeyRight, keymap.KeyD:
		next = Point{X: 1, Y: 0}
	default:
		return
	}
	if next.X == -s.direction.X && next.Y == -s.direction.Y {
		return
	}
	s.direction = next
}

// Tick advances whatever the current mode animates: ripple ages in ambient,
// snake steps once the step interval has elapsed, and the game-over
// timeout. Called once per render tick.
func (s *State) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case ModeAmbient:
		s.timeTick += timeTickIncrement
		live := s.ripples[:0]
		for i := range s.ripples {
			s.ripples[i].age++
			if s.ripples[i].age < s.ripples[i].maxAge {
				live = append(live, s.ripples[i])
			}
		}
		s.ripples = live
	case ModeSnake:
		if s.clock.Now().Sub(s.lastStep) >= s.stepInterval {
			s.stepSnake()
			s.lastStep = s.clock.Now()
		}
	case ModeGameOver:
		if s.clock.Now().Sub(s.gameOverAt) >= gameOverTimeout {
			s.mode = ModeAmbient
			s.gameOverAt = time.Time{}
		}
	}
}

// resetSnake enters snake mode with the starting body. The step interval is
// deliberately left alone so the speed earned in a previous round carries
// over. Caller holds the lock.
func (s *State) resetSnake() {
	s.snake = []Point{{X: 5, Y: 3}, {X: 4, Y: 3}, {X: 3, Y: 3}}
	s.direction = Point{X: 1, Y: 0}
	s.spawnFood()
	s.mode = ModeSnake
}

// spawnFood rejection-samples a cell not covered by the snake body.
// Caller holds the lock.
func (s *State) spawnFood() {
	for {
		p := Point{X: s.rng.Intn(s.width), Y: s.rng.Intn(s.height)}
		if !slices.Contains(s.snake, p) {
			s.food = p
			return
		}
	}
}

// stepSnake performs one simulation step. Hitting a wall or the body ends
// the game with the body untouched; eating grows the snake by one and
// speeds it up, bounded below. Caller holds the lock.
func (s *State) stepSnake() {
	head := s.snake[0]
	newHead := Point{X: head.X + s.direction.X, Y: head.Y + s.direction.Y}

	if newHead.X < 0 || newHead.X >= s.width ||
		newHead.Y < 0 || newHead.Y >= s.height ||
		slices.Contains(s.snake, newHead) {
		s.mode = ModeGameOver
		s.gameOverAt = s.clock.Now()
		return
	}

	s.snake = append([]Point{newHead}, s.snake...)
	if newHead == s.food {
		s.spawnFood()
		s.stepInterval -= stepIntervalDecrement
		if s.stepInterval < minStepInterval {
			s.stepInterval = minStepInterval
		}
	} else {
		s.snake = s.snake[:len(s.snake)-1]
	}
}
