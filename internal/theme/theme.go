// Package theme holds the live LED theme shared between the polling loop and
// the configuration interfaces.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/sweeney/ayaled/internal/logic"
)

// Slot names accepted by the configuration interfaces.
const (
	SlotCharging   = "charging"
	SlotLowBattery = "low_bat"
	SlotFull       = "full"
	SlotNormal     = "normal"
)

// Slots lists every valid slot name.
var Slots = []string{SlotCharging, SlotLowBattery, SlotFull, SlotNormal}

// ErrUnknownSlot is returned for a slot name not in Slots.
var ErrUnknownSlot = errors.New("unknown theme slot")

// Store is a lock-guarded Theme. The lock is never held across I/O.
type Store struct {
	mu    sync.RWMutex
	theme logic.Theme
}

// NewStore creates a Store holding t.
func NewStore(t logic.Theme) *Store {
	return &Store{theme: t}
}

// Theme returns a copy of the current theme.
func (s *Store) Theme() logic.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Get returns the color of slot.
func (s *Store) Get(slot string) (logic.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := field(&s.theme, slot)
	if err != nil {
		return logic.Color{}, err
	}
	return *p, nil
}

// Set replaces the color of slot. Unknown slots leave the theme unchanged.
func (s *Store) Set(slot string, c logic.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := field(&s.theme, slot)
	if err != nil {
		return err
	}
	*p = c
	return nil
}

func field(t *logic.Theme, slot string) (*logic.Color, error) {
	switch slot {
	case SlotCharging:
		return &t.Charging, nil
	case SlotLowBattery:
		return &t.LowBattery, nil
	case SlotFull:
		return &t.Full, nil
	case SlotNormal:
		return &t.Normal, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
}

// ParseChannel parses one 0-255 channel value.
func ParseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("channel %q: %w", s, err)
	}
	return uint8(v), nil
}

// ParseColor parses three channel strings. It stops at the first error.
func ParseColor(r, g, b string) (logic.Color, error) {
	var c logic.Color
	var err error
	if c.R, err = ParseChannel(r); err != nil {
		return logic.Color{}, err
	}
	if c.G, err = ParseChannel(g); err != nil {
		return logic.Color{}, err
	}
	if c.B, err = ParseChannel(b); err != nil {
		return logic.Color{}, err
	}
	return c, nil
}
