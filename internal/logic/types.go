// Package logic contains the pure LED color rules for the ayaled daemon.
// This package has NO external dependencies (no EC, MQTT, sysfs or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// String renders the color as R:G:B.
func (c Color) String() string {
	return fmt.Sprintf("%d:%d:%d", c.R, c.G, c.B)
}

// Status is the battery charge status.
type Status string

const (
	StatusCharging    Status = "Charging"
	StatusDischarging Status = "Discharging"
	StatusOther       Status = "Unknown"
)

// ParseStatus maps a sysfs status string to a Status.
// Anything other than Charging or Discharging is StatusOther.
func ParseStatus(s string) Status {
	switch s {
	case string(StatusCharging):
		return StatusCharging
	case string(StatusDischarging):
		return StatusDischarging
	default:
		return StatusOther
	}
}

// Reading is a single battery sample.
type Reading struct {
	Capacity int // 0-100
	Status   Status
}

// Theme holds the color for each battery condition.
type Theme struct {
	Charging   Color
	LowBattery Color
	Full       Color
	Normal     Color
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Charging:   Color{0, 0, 255},
		LowBattery: Color{255, 0, 0},
		Full:       Color{0, 255, 255},
		Normal:     Color{0, 0, 0},
	}
}

// Event describes one LED write.
type Event struct {
	Timestamp time.Time
	Color     Color   // color written to the LEDs (after scaling)
	Target    Color   // theme color before scaling
	Reading   Reading // battery sample that produced the color
	Scale     float64
	Forced    bool // written because of a resume, not a color change
}

// Thresholds for color resolution.
const (
	LowBatteryMax = 20
	FullMin       = 90
)
