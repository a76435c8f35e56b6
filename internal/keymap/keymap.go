// Package keymap places Linux key scancodes on the logical lighting grid.
package keymap

import "math/rand"

// Key codes from include/uapi/linux/input-event-codes.h, limited to the keys
// the daemon cares about by name.
const (
	KeyEsc       uint16 = 1
	KeyTab       uint16 = 15
	KeyW         uint16 = 17
	KeyLeftCtrl  uint16 = 29
	KeyA         uint16 = 30
	KeyS         uint16 = 31
	KeyD         uint16 = 32
	KeyGrave     uint16 = 41
	KeyLeftShift uint16 = 42
	KeySpace     uint16 = 57
	KeyCapsLock  uint16 = 58
	KeyUp        uint16 = 103
	KeyLeft      uint16 = 105
	KeyRight     uint16 = 106
	KeyDown      uint16 = 108
)

// ToGrid maps a key code to a grid cell covering the primary rows of a
// full-size keyboard. Codes outside the table land on a uniformly random
// in-bounds cell: an unknown key should still produce visible feedback, so
// the fallback is deliberate rather than an error.
func ToGrid(code uint16, width, height int, rng *rand.Rand) (int, int) {
	switch {
	case code == KeyEsc:
		return 0, 0
	case code >= 59 && code <= 68: // F1-F10
		return int(code-59) + 2, 0
	case code == KeyGrave:
		return 0, 1
	case code >= 2 && code <= 13: // 1 through =
		return int(code - 1), 1
	case code == KeyTab:
		return 0, 2
	case code >= 16 && code <= 25: // Q through P
		return int(code - 15), 2
	case code == KeyCapsLock:
		return 0, 3
	case code >= 30 && code <= 38: // A through L
		return int(code - 29), 3
	case code == KeyLeftShift:
		return 0, 4
	case code >= 44 && code <= 50: // Z through M
		return int(code - 43), 4
	case code == KeyLeftCtrl:
		return 0, 5
	case code == KeyUp:
		return 19, 4
	case code == KeyDown:
		return 19, 5
	case code == KeyLeft:
		return 18, 5
	case code == KeyRight:
		return 20, 5
	case code == KeySpace:
		return 10, 5
	default:
		return rng.Intn(width), rng.Intn(height)
	}
}
