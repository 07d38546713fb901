package led

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sweeney/ayaled/internal/ec"
)

// SuperIO index/data port pair and the indirect register selectors.
const (
	superIOAddrPort = 0x4e
	superIODataPort = 0x4f

	superIOIndex = 0x2e
	superIOData  = 0x2f

	superIORegHi  = 0x11
	superIORegLo  = 0x10
	superIORegVal = 0x12
)

// superIO writes 16-bit addressed registers of the SuperIO chip on the
// AIR Plus.
type superIO struct {
	mu    sync.Mutex
	ports ec.PortIO
}

// cmd stores val at the register (hi<<8 | lo).
func (s *superIO) cmd(hi, lo, val byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, kv := range [][2]byte{{superIORegHi, hi}, {superIORegLo, lo}, {superIORegVal, val}} {
		errs = append(errs,
			s.ports.Outb(superIOAddrPort, superIOIndex),
			s.ports.Outb(superIODataPort, kv[0]),
			s.ports.Outb(superIOAddrPort, superIOData),
			s.ports.Outb(superIODataPort, kv[1]),
		)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("superio 0x%02x%02x=0x%02x: %w", hi, lo, val, err)
	}
	return nil
}

// airPlusInit unlocks and configures the LED pins.
var airPlusInit = [][3]byte{
	{0xd1, 0x87, 0xa5},
	{0xd1, 0xb2, 0x31},
	{0xd1, 0xc6, 0x01},

	{0xd1, 0x87, 0xa5},
	{0xd1, 0x72, 0x31},
	{0xd1, 0x86, 0x01},

	{0xd1, 0x87, 0xa5},
	{0xd1, 0x70, 0x00},
	{0xd1, 0x86, 0x01},
	{0xd1, 0x60, 0x80},
}

func (s *superIO) init() error {
	for _, c := range airPlusInit {
		if err := s.cmd(c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	return nil
}
