package daemon

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mariq/rgbctl/internal/engine"
	"github.com/mariq/rgbctl/internal/evdev"
	"github.com/mariq/rgbctl/internal/keymap"
	"github.com/mariq/rgbctl/internal/lights"
)

type recordingDevice struct {
	name     string
	ledCount int
	err      error

	mu     sync.Mutex
	frames [][]lights.Color
}

func (d *recordingDevice) Name() string  { return d.name }
func (d *recordingDevice) LEDCount() int { return d.ledCount }

func (d *recordingDevice) SetColors(_ context.Context, colors []lights.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, colors)
	return d.err
}

func (d *recordingDevice) frameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

func pressRecord(b []byte, code uint16) []byte {
	b = binary.LittleEndian.AppendUint64(b, 0)
	b = binary.LittleEndian.AppendUint64(b, 0)
	b = binary.LittleEndian.AppendUint16(b, evdev.EvKey)
	b = binary.LittleEndian.AppendUint16(b, code)
	b = binary.LittleEndian.AppendUint32(b, 1)
	return b
}

func TestRunInputFeedsCheatSequence(t *testing.T) {
	var raw []byte
	for _, code := range []uint16{
		keymap.KeyUp, keymap.KeyDown, keymap.KeyLeft,
		keymap.KeyRight, keymap.KeyUp, keymap.KeyDown,
	} {
		raw = pressRecord(raw, code)
	}

	state := engine.New(22, 6)
	RunInput(context.Background(), bytes.NewReader(raw), state)

	require.Equal(t, engine.ModeSnake, state.Mode())
}

func TestRunPushesFramesAndThrottlesRAM(t *testing.T) {
	keyboard := &recordingDevice{name: "keyboard", ledCount: 22 * 6}
	mouse := &recordingDevice{name: "mouse", ledCount: 2}
	ram := &recordingDevice{name: "dram", ledCount: 8}
	fan := &recordingDevice{name: "fan", ledCount: 4, err: errors.New("device unplugged")}

	groups := lights.Groups{
		Keyboards: []lights.Device{keyboard},
		Mice:      []lights.Device{mouse},
		RAM:       []lights.Device{ram},
		Fans:      []lights.Device{fan},
	}

	state := engine.New(22, 6)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, Config{TickInterval: time.Millisecond}, state, groups)
	}()

	require.Eventually(t, func() bool {
		return keyboard.frameCount() >= 9
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	kbFrames := keyboard.frameCount()
	require.Len(t, keyboard.frames[0], 22*6)

	// RAM updates only every 3rd tick.
	require.Less(t, ram.frameCount(), kbFrames)
	require.GreaterOrEqual(t, ram.frameCount(), kbFrames/3-1)
	require.Len(t, ram.frames[0], 8)

	// Mice get a uniform fill, fans are forced dark, and the fan's push
	// error must not have stopped anybody else.
	require.Equal(t, mouse.frames[0][0], mouse.frames[0][1])
	require.Equal(t, lights.Solid(lights.Black, 4), fan.frames[0])
	require.GreaterOrEqual(t, mouse.frameCount(), kbFrames-1)
}
