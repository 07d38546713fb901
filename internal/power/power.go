// Package power reads battery and backlight state from sysfs.
package power

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sweeney/ayaled/internal/logic"
)

// Default sysfs class directories.
const (
	PowerSupplyRoot = "/sys/class/power_supply"
	BacklightRoot   = "/sys/class/backlight"
)

// ErrNoBattery is returned when no power supply of type Battery exists.
var ErrNoBattery = errors.New("no battery found")

// BatteryReader samples the battery.
type BatteryReader interface {
	// Read returns the current reading. Unparsable values are replaced with
	// capacity 0 and StatusOther; the error reports what went wrong.
	Read() (logic.Reading, error)
}

// BrightnessReader samples the screen brightness.
type BrightnessReader interface {
	// Ratio returns brightness/max_brightness, or 1.0 if unknown.
	Ratio() float64
}

// Battery reads capacity and status files of one power supply.
type Battery struct {
	dir string
}

// FindBattery returns the first entry under root whose type is Battery.
func FindBattery(root string) (*Battery, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		typ, err := readString(filepath.Join(dir, "type"))
		if err != nil {
			continue
		}
		if typ == "Battery" {
			return &Battery{dir: dir}, nil
		}
	}
	return nil, fmt.Errorf("%w under %s", ErrNoBattery, root)
}

// Dir returns the battery's sysfs directory.
func (b *Battery) Dir() string {
	return b.dir
}

// Read returns the current battery reading.
func (b *Battery) Read() (logic.Reading, error) {
	r := logic.Reading{Status: logic.StatusOther}
	var errs []error

	capacity, err := readInt(filepath.Join(b.dir, "capacity"))
	if err != nil {
		errs = append(errs, fmt.Errorf("capacity: %w", err))
	} else {
		r.Capacity = int(capacity)
	}

	status, err := readString(filepath.Join(b.dir, "status"))
	if err != nil {
		errs = append(errs, fmt.Errorf("status: %w", err))
	} else {
		r.Status = logic.ParseStatus(status)
	}

	return r, errors.Join(errs...)
}

// Backlight reads brightness of one backlight device.
type Backlight struct {
	dir string
}

// FindBacklight returns the first backlight under root, or nil if there is
// none.
func FindBacklight(root string) *Backlight {
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) == 0 {
		return nil
	}
	return &Backlight{dir: filepath.Join(root, entries[0].Name())}
}

// Ratio returns brightness/max_brightness. A nil Backlight or unreadable
// files give 1.0.
func (b *Backlight) Ratio() float64 {
	if b == nil {
		return 1.0
	}
	cur, err := readInt(filepath.Join(b.dir, "brightness"))
	if err != nil {
		return 1.0
	}
	maxB, err := readInt(filepath.Join(b.dir, "max_brightness"))
	if err != nil || maxB <= 0 {
		return 1.0
	}
	return float64(cur) / float64(maxB)
}

func readString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readInt(path string) (int64, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}
