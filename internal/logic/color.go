package logic

import "math"

// Resolve picks the theme color for a battery reading.
// Charging wins over the low-battery threshold; a charging battery at or above
// FullMin shows the full color.
func Resolve(theme Theme, r Reading) Color {
	if r.Status == StatusCharging {
		if r.Capacity < FullMin {
			return theme.Charging
		}
		return theme.Full
	}
	switch {
	case r.Capacity >= FullMin && r.Capacity <= 100:
		return theme.Full
	case r.Capacity >= 0 && r.Capacity <= LowBatteryMax:
		return theme.LowBattery
	default:
		return theme.Normal
	}
}

// Scale multiplies each channel by ratio and truncates. Ratio is clamped to
// [0, 1].
func Scale(c Color, ratio float64) Color {
	if math.IsNaN(ratio) || ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return Color{
		R: uint8(float64(c.R) * ratio),
		G: uint8(float64(c.G) * ratio),
		B: uint8(float64(c.B) * ratio),
	}
}

// Gate remembers the last written color and decides whether the next color
// needs a hardware write.
type Gate struct {
	last   Color
	writes int
}

// NewGate creates a Gate. The first color offered is always written, since
// the LED state left by firmware is unknown.
func NewGate() *Gate {
	return &Gate{}
}

// Should reports whether c must be written. It returns true for the first
// color, when c differs from the last written color, or when force is set,
// and records c as written.
func (g *Gate) Should(c Color, force bool) bool {
	if g.writes > 0 && c == g.last && !force {
		return false
	}
	g.last = c
	g.writes++
	return true
}

// Last returns the last written color.
func (g *Gate) Last() Color {
	return g.last
}

// Writes returns how many writes the gate has allowed.
func (g *Gate) Writes() int {
	return g.writes
}
