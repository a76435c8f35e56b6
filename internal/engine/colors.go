package engine

import (
	"math"
	"slices"
	"time"

	"github.com/mariq/rgbctl/internal/lights"
)

// Ripple rings expand 1.2 cells per tick and light cells within 1.5 of the
// ring's radius.
const (
	rippleSpeed = 1.2
	rippleWidth = 1.5
)

// RAM channels oscillate between floors and ceilings instead of down to
// black: some sticks coil-whine at minimum drive, and a low red ceiling
// keeps the palette from drifting pink.
const (
	ramMinRed, ramMaxRed     = 40.0, 110.0
	ramMinGreen, ramMaxGreen = 55.0, 180.0
	ramMinBlue, ramMaxBlue   = 60.0, 200.0
)

var (
	snakeHeadColor = lights.Color{Green: 255}
	snakeBodyColor = lights.Color{Green: 150}
	foodColor      = lights.Color{Red: 255, Blue: 255}
	boardColor     = lights.Color{Red: 5, Green: 5, Blue: 5}
	gameOverColor  = lights.Color{Red: 255}
)

// KeyboardFrame renders every grid cell row-major (y outer, x inner) under a
// single lock hold and returns the buffer for the caller to push outside the
// lock.
func (s *State) KeyboardFrame() []lights.Color {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := make([]lights.Color, 0, s.width*s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			frame = append(frame, s.cellColor(x, y))
		}
	}
	return frame
}

// RAMFrame renders one memory stick's LED strip.
func (s *State) RAMFrame(stick, ledCount int) []lights.Color {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := make([]lights.Color, ledCount)
	for i := range frame {
		frame[i] = ramColor(stick, i, ledCount, s.timeTick)
	}
	return frame
}

// UniformColor samples the water field at a fixed mid-board coordinate, for
// devices that get a single color replicated across all LEDs.
func (s *State) UniformColor() lights.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return waterColor(10, 3, s.timeTick)
}

// cellColor picks the color for one grid cell in the current mode.
// Caller holds the lock.
func (s *State) cellColor(x, y int) lights.Color {
	switch s.mode {
	case ModeSnake:
		p := Point{X: x, Y: y}
		if len(s.snake) > 0 && s.snake[0] == p {
			return snakeHeadColor
		}
		if slices.Contains(s.snake, p) {
			return snakeBodyColor
		}
		if s.food == p {
			return foodColor
		}
		return boardColor
	case ModeGameOver:
		var elapsed time.Duration
		if !s.gameOverAt.IsZero() {
			elapsed = s.clock.Now().Sub(s.gameOverAt)
		}
		if (elapsed.Milliseconds()/250)%2 == 0 {
			return gameOverColor
		}
		return lights.Black
	default:
		return s.ambientColor(float64(x), float64(y))
	}
}

// ambientColor is the water field plus the additive ripple rings.
// Caller holds the lock.
func (s *State) ambientColor(x, y float64) lights.Color {
	c := waterColor(x, y, s.timeTick)
	for _, r := range s.ripples {
		dist := math.Hypot(x-r.x, y-r.y)
		radius := r.age * rippleSpeed
		if math.Abs(dist-radius) >= rippleWidth {
			continue
		}
		// Cubic falloff: bright for most of the ripple's life, then a
		// fast fade at the end.
		fade := 1 - math.Pow(r.age/r.maxAge, 3)
		if fade > 0 {
			c.Red = addSaturating(c.Red, fade*255)
			c.Green = addSaturating(c.Green, fade*255)
			c.Blue = addSaturating(c.Blue, fade*255)
		}
	}
	return c
}

// waterColor superposes three traveling waves into a brightness scalar and
// scales it into a cool bluish palette. The combined wave lands in [-1, 1],
// so brightness spans [-0.3, 0.7] and each channel must clamp at zero.
func waterColor(x, y, t float64) lights.Color {
	wave1 := math.Sin(x*0.4 + y*0.4 + t)
	wave2 := math.Cos(x*0.6 - t*1.5)
	wave3 := math.Sin(y*0.5 + t*0.5)
	combined := (wave1 + wave2 + wave3) / 3

	brightness := 0.2 + 0.5*combined

	return lights.Color{
		Red:   clamp8(brightness * 200),
		Green: clamp8(brightness * 220),
		Blue:  clamp8(brightness * 255),
	}
}

// ramColor drifts a slow sine along each stick, phase-offset per stick.
func ramColor(stick, led, totalLEDs int, t float64) lights.Color {
	frac := 0.0
	if totalLEDs > 0 {
		frac = float64(led) / float64(totalLEDs)
	}
	phase := float64(stick)*0.8 + frac*4.0 + t*0.4
	wave := math.Sin(phase)*0.5 + 0.5

	return lights.Color{
		Red:   uint8(ramMinRed + wave*(ramMaxRed-ramMinRed)),
		Green: uint8(ramMinGreen + wave*(ramMaxGreen-ramMinGreen)),
		Blue:  uint8(ramMinBlue + wave*(ramMaxBlue-ramMinBlue)),
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// addSaturating brightens a channel by a non-negative amount, capping at 255.
func addSaturating(c uint8, v float64) uint8 {
	return clamp8(float64(c) + v)
}
