package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mariq/rgbctl/internal/keymap"
	"github.com/mariq/rgbctl/internal/lights"
)

func cellAt(frame []lights.Color, x, y int) lights.Color {
	return frame[y*22+x]
}

func TestWaterColorStaysCool(t *testing.T) {
	// The water palette scales one brightness scalar by per-channel maxima,
	// so blue >= green >= red must hold everywhere, for any time value.
	sawLight := false
	for tick := 0.0; tick < 50; tick += 0.7 {
		for y := 0; y < 6; y++ {
			for x := 0; x < 22; x++ {
				c := waterColor(float64(x), float64(y), tick)
				require.GreaterOrEqual(t, c.Blue, c.Green)
				require.GreaterOrEqual(t, c.Green, c.Red)
				if c.Blue > 0 {
					sawLight = true
				}
			}
		}
	}
	require.True(t, sawLight, "field should not be permanently black")
}

func TestRippleBrightensRing(t *testing.T) {
	s, _ := newTestState()

	s.HandleKeyPress(keymap.KeySpace) // ripple at (10, 5)
	s.Tick()                          // age 1, ring radius 1.2

	frame := s.KeyboardFrame()

	// (11,5) is 1 cell from the origin, inside the ring band. Early in the
	// ripple's life the fade is near 1, so all channels saturate.
	lit := cellAt(frame, 11, 5)
	require.Equal(t, lights.Color{Red: 255, Green: 255, Blue: 255}, lit)

	// (2,5) is far outside the band and stays at the base field.
	require.Equal(t, waterColor(2, 5, s.timeTick), cellAt(frame, 2, 5))
}

func TestOverlappingRipplesSaturate(t *testing.T) {
	s, _ := newTestState()

	s.HandleKeyPress(keymap.KeySpace)
	s.HandleKeyPress(keymap.KeySpace)
	s.Tick()

	c := cellAt(s.KeyboardFrame(), 11, 5)
	require.Equal(t, uint8(255), c.Red)
	require.Equal(t, uint8(255), c.Green)
	require.Equal(t, uint8(255), c.Blue)
}

func TestSnakePalette(t *testing.T) {
	s, _ := newTestState()
	enterSnake(s)
	s.food = Point{X: 0, Y: 0}

	frame := s.KeyboardFrame()
	require.Equal(t, snakeHeadColor, cellAt(frame, 5, 3))
	require.Equal(t, snakeBodyColor, cellAt(frame, 4, 3))
	require.Equal(t, snakeBodyColor, cellAt(frame, 3, 3))
	require.Equal(t, foodColor, cellAt(frame, 0, 0))
	require.Equal(t, boardColor, cellAt(frame, 12, 2))
}

func TestGameOverBlink(t *testing.T) {
	s, clock := newTestState()
	s.mode = ModeGameOver
	s.gameOverAt = clock.Now()

	clock.advance(100 * time.Millisecond)
	require.Equal(t, gameOverColor, cellAt(s.KeyboardFrame(), 0, 0))

	clock.advance(200 * time.Millisecond) // 300ms: odd half-period
	require.Equal(t, lights.Black, cellAt(s.KeyboardFrame(), 0, 0))

	clock.advance(250 * time.Millisecond) // 550ms: even again
	require.Equal(t, gameOverColor, cellAt(s.KeyboardFrame(), 0, 0))
}

func TestRAMColorStaysWithinFloors(t *testing.T) {
	for stick := 0; stick < 4; stick++ {
		for tick := 0.0; tick < 40; tick += 0.45 {
			for led := 0; led < 12; led++ {
				c := ramColor(stick, led, 12, tick)
				require.GreaterOrEqual(t, c.Red, uint8(ramMinRed))
				require.LessOrEqual(t, c.Red, uint8(ramMaxRed))
				require.GreaterOrEqual(t, c.Green, uint8(ramMinGreen))
				require.LessOrEqual(t, c.Green, uint8(ramMaxGreen))
				require.GreaterOrEqual(t, c.Blue, uint8(ramMinBlue))
				require.LessOrEqual(t, c.Blue, uint8(ramMaxBlue))
			}
		}
	}
}

func TestRAMFrameLength(t *testing.T) {
	s, _ := newTestState()
	require.Len(t, s.RAMFrame(0, 8), 8)
	require.Empty(t, s.RAMFrame(0, 0))
}

func TestUniformColorSamplesWaterField(t *testing.T) {
	s, _ := newTestState()
	s.Tick()
	s.Tick()
	require.Equal(t, waterColor(10, 3, s.timeTick), s.UniformColor())
}

func TestKeyboardFrameSize(t *testing.T) {
	s, _ := newTestState()
	require.Len(t, s.KeyboardFrame(), 22*6)
}

func TestClamp8(t *testing.T) {
	require.Equal(t, uint8(0), clamp8(-40))
	require.Equal(t, uint8(0), clamp8(0))
	require.Equal(t, uint8(128), clamp8(128))
	require.Equal(t, uint8(255), clamp8(255))
	require.Equal(t, uint8(255), clamp8(900))
}
