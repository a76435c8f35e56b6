package engine

import "time"

// Clock supplies the current time for step timing and the game-over
// countdown. Injected so tests can drive time by hand.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
