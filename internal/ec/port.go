package ec

import (
	"fmt"
	"log"
	"time"
)

// portAccess writes EC RAM through the command/data port pair.
type portAccess struct {
	io      PortIO
	timeout time.Duration
	poll    time.Duration
	sleep   func(time.Duration)
}

func newPortAccess(io PortIO, timeout, poll time.Duration) *portAccess {
	return &portAccess{
		io:      io,
		timeout: timeout,
		poll:    poll,
		sleep:   time.Sleep,
	}
}

// write sends CmdWrite, the address and the value. Every byte waits for the
// input buffer to drain first. Timeouts and port errors are logged and the
// sequence continues.
func (p *portAccess) write(addr, value byte) {
	steps := []struct {
		port uint16
		val  byte
		what string
	}{
		{CommandPort, CmdWrite, "command"},
		{DataPort, addr, "address"},
		{DataPort, value, "value"},
	}
	for _, s := range steps {
		if err := p.waitIBF(); err != nil {
			log.Printf("ec: write 0x%02x=0x%02x: %s: %v", addr, value, s.what, err)
		}
		if err := p.io.Outb(s.port, s.val); err != nil {
			log.Printf("ec: write 0x%02x=0x%02x: out %s: %v", addr, value, s.what, err)
		}
	}
}

// waitIBF polls the status register until the input buffer full bit clears.
func (p *portAccess) waitIBF() error {
	// The status register is read at least once, even if poll > timeout.
	attempts := 1
	if p.poll > 0 {
		attempts = max(1, int(p.timeout/p.poll))
	}
	for i := 0; i < attempts; i++ {
		status, err := p.io.Inb(CommandPort)
		if err != nil {
			return fmt.Errorf("read status: %w", err)
		}
		if status&(1<<statusIBF) == 0 {
			return nil
		}
		p.sleep(p.poll)
	}
	return fmt.Errorf("timeout after %v waiting for input buffer to clear", p.timeout)
}
