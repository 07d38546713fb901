// Package ec provides write access to embedded controller RAM.
// Two strategies exist: the legacy I/O-port command/data handshake and a
// memory-mapped window onto EC RAM. A Driver picks one on first use and
// serializes all writes through a single mutex.
package ec

import "time"

// Legacy ACPI EC ports and commands.
const (
	DataPort    = 0x62
	CommandPort = 0x66

	CmdWrite = 0x81

	statusIBF = 1 // input buffer full bit of the status register
)

// EC RAM window exposed by AYANEO firmware.
const (
	RAMBase int64 = 0xFE800400
	RAMSize       = 0xFF
)

// Handshake bounds for the port strategy.
const (
	DefaultWaitTimeout = time.Second
	DefaultWaitPoll    = time.Millisecond
)

// Method identifies how EC RAM is reached.
type Method string

const (
	MethodPort Method = "ioport"
	MethodMMIO Method = "mmio"
)

// Writer writes a single byte of EC RAM.
type Writer interface {
	Write(addr, value byte)
}

// PortIO reads and writes single bytes on x86 I/O ports.
type PortIO interface {
	Inb(port uint16) (byte, error)
	Outb(port uint16, value byte) error
}

// Mapper maps the EC RAM window. It returns the window and a function that
// releases it.
type Mapper func() (mem []byte, unmap func() error, err error)
