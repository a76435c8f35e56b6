// Package daemon wires the input producer and the fixed-rate render consumer
// around the shared engine state.
package daemon

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mariq/rgbctl/internal/engine"
	"github.com/mariq/rgbctl/internal/evdev"
	"github.com/mariq/rgbctl/internal/lights"
	"github.com/mariq/rgbctl/internal/logging"
)

var logger = logging.New("daemon")

type Config struct {
	TickInterval time.Duration
}

// RAM sticks don't need frame-rate updates; pushing every 3rd tick keeps
// bus traffic down.
const ramTickDivisor = 3

const pushWarnInterval = 10 * time.Second

// RunInput decodes the event stream and feeds key presses into the state.
// It blocks between events and returns permanently once the stream ends or
// errors; the render loop keeps running without it.
func RunInput(ctx context.Context, r io.Reader, state *engine.State) {
	dec := evdev.NewDecoder(r)
	for ctx.Err() == nil {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				logger.Info("Input stream ended; continuing without key events")
			} else {
				logger.With(zap.Error(err)).Warn("Input stream failed; continuing without key events")
			}
			return
		}
		if !ev.KeyPress() {
			continue
		}
		state.HandleKeyPress(ev.Code)
	}
}

// Run drives the render loop: advance the simulation once per tick, snapshot
// color buffers under the state lock, then push them to devices outside it.
// Device failures never stall the cadence; they surface as one throttled
// warning.
func Run(ctx context.Context, config Config, state *engine.State, groups lights.Groups) {
	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	var tickCount uint64
	var lastWarning time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		tickCount++

		state.Tick()

		var errs error
		if len(groups.Keyboards) > 0 {
			frame := state.KeyboardFrame()
			for _, kb := range groups.Keyboards {
				errs = multierr.Append(errs, kb.SetColors(ctx, lights.Fit(frame, kb.LEDCount())))
			}
		}

		if tickCount%ramTickDivisor == 0 {
			for i, stick := range groups.RAM {
				errs = multierr.Append(errs, stick.SetColors(ctx, state.RAMFrame(i, stick.LEDCount())))
			}
		}

		if len(groups.Mice) > 0 {
			uniform := state.UniformColor()
			for _, m := range groups.Mice {
				errs = multierr.Append(errs, m.SetColors(ctx, lights.Solid(uniform, m.LEDCount())))
			}
		}

		for _, f := range groups.Fans {
			errs = multierr.Append(errs, f.SetColors(ctx, lights.Solid(lights.Black, f.LEDCount())))
		}

		if errs != nil && time.Since(lastWarning) > pushWarnInterval {
			logger.With(zap.Error(errs)).Warn("Some devices rejected color updates")
			lastWarning = time.Now()
		}
	}
}
