package ec

import (
	"log"
	"sync"
	"time"
)

// Config describes how a Driver reaches the EC.
type Config struct {
	// Preferred is the method to try first. MethodMMIO falls back to
	// MethodPort if Mapper fails.
	Preferred Method
	Ports     PortIO
	Mapper    Mapper

	WaitTimeout time.Duration // default DefaultWaitTimeout
	WaitPoll    time.Duration // default DefaultWaitPoll
}

type access interface {
	write(addr, value byte)
}

// Driver is the single gate to EC RAM. The access method is selected lazily
// on the first write and never changes afterwards.
type Driver struct {
	mu     sync.Mutex
	cfg    Config
	access access
	method Method
}

// NewDriver creates a Driver. No hardware is touched until the first write.
func NewDriver(cfg Config) *Driver {
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	if cfg.WaitPoll <= 0 {
		cfg.WaitPoll = DefaultWaitPoll
	}
	if cfg.Preferred == "" {
		cfg.Preferred = MethodPort
	}
	return &Driver{cfg: cfg}
}

// Write stores value at addr in EC RAM. Failures are logged, never returned.
func (d *Driver) Write(addr, value byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectLocked()
	d.access.write(addr, value)
}

// Method returns the active access method, selecting it if needed.
func (d *Driver) Method() Method {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selectLocked()
	return d.method
}

// Close releases the memory mapping, if any.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m, ok := d.access.(*mmioAccess); ok {
		return m.close()
	}
	return nil
}

func (d *Driver) selectLocked() {
	if d.access != nil {
		return
	}

	if d.cfg.Preferred == MethodMMIO {
		if d.cfg.Mapper == nil {
			log.Printf("ec: no mapper configured, falling back to %s", MethodPort)
		} else if mem, unmap, err := d.cfg.Mapper(); err != nil {
			log.Printf("ec: map EC RAM failed, falling back to %s: %v", MethodPort, err)
		} else {
			d.access = &mmioAccess{mem: mem, unmap: unmap}
			d.method = MethodMMIO
			log.Printf("ec: using %s access (%d-byte window)", MethodMMIO, len(mem))
			return
		}
	}

	d.access = newPortAccess(d.cfg.Ports, d.cfg.WaitTimeout, d.cfg.WaitPoll)
	d.method = MethodPort
	log.Printf("ec: using %s access (command 0x%02x, data 0x%02x)", MethodPort, CommandPort, DataPort)
}
