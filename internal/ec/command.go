package ec

import (
	"sync"
	"time"
)

// Layout locates the command registers in EC RAM.
type Layout struct {
	Cmd    byte
	Param1 byte
	Param2 byte
	Strobe byte

	StrobeActive byte
	StrobeIdle   byte
}

// DefaultLayout is the register map used by AYANEO EC firmware.
var DefaultLayout = Layout{
	Cmd:          0x6d,
	Param1:       0xb1,
	Param2:       0xb2,
	Strobe:       0xbf,
	StrobeActive: 0x10,
	StrobeIdle:   0xff,
}

// DefaultSettle is how long the strobe is held in each phase.
const DefaultSettle = 10 * time.Millisecond

// Commander issues three-register commands to the EC.
type Commander struct {
	mu     sync.Mutex
	w      Writer
	layout Layout
	settle time.Duration
	sleep  func(time.Duration)
}

// NewCommander creates a Commander writing through w.
func NewCommander(w Writer, layout Layout, settle time.Duration) *Commander {
	return &Commander{
		w:      w,
		layout: layout,
		settle: settle,
		sleep:  time.Sleep,
	}
}

// Command writes cmd, p1 and p2, then pulses the strobe register.
// The controller samples the registers asynchronously, so both phases of the
// strobe must be held for the settle delay.
func (c *Commander) Command(cmd, p1, p2 byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Write(c.layout.Cmd, cmd)
	c.w.Write(c.layout.Param1, p1)
	c.w.Write(c.layout.Param2, p2)
	c.w.Write(c.layout.Strobe, c.layout.StrobeActive)
	c.sleep(c.settle)
	c.w.Write(c.layout.Strobe, c.layout.StrobeIdle)
	c.sleep(c.settle)
}
