// Package lights defines the device sink surface the render loop pushes
// color buffers to, plus the name-based grouping of discovered devices.
package lights

import (
	"context"
	"strings"
)

type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

var Black = Color{}

// Device is one addressable lighting device. SetColors expects exactly
// LEDCount colors; use Fit to pad or truncate a buffer first.
type Device interface {
	Name() string
	LEDCount() int
	SetColors(ctx context.Context, colors []Color) error
}

// Groups splits devices into the roles the render loop treats differently.
type Groups struct {
	Keyboards []Device
	Mice      []Device
	RAM       []Device
	Fans      []Device
}

// GroupByName classifies devices by substrings of their lowercased names.
// Anything unrecognized is treated as a fan/misc device.
func GroupByName(devices []Device) Groups {
	var g Groups
	for _, d := range devices {
		name := strings.ToLower(d.Name())
		switch {
		case containsAny(name, "keyboard", "blackwidow"):
			g.Keyboards = append(g.Keyboards, d)
		case containsAny(name, "mouse", "deathadder"):
			g.Mice = append(g.Mice, d)
		case containsAny(name, "dram", "memory", "ene", "trident", "g.skill", "gigabyte"):
			g.RAM = append(g.RAM, d)
		default:
			g.Fans = append(g.Fans, d)
		}
	}
	return g
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Fit returns a buffer of exactly n colors, padding with black or truncating.
// The input slice is never modified.
func Fit(colors []Color, n int) []Color {
	if n < 0 {
		n = 0
	}
	out := make([]Color, n)
	copy(out, colors)
	return out
}

// Solid returns n copies of a single color.
func Solid(c Color, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}
