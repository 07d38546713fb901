package ec

import (
	"errors"
	"sync"
)

// PortWrite records a single Outb call.
type PortWrite struct {
	Port  uint16
	Value byte
}

// FakePorts is a PortIO test double. It reports an empty input buffer unless
// Busy is set, and records every Outb.
type FakePorts struct {
	mu sync.Mutex

	// Writes contains every Outb in order.
	Writes []PortWrite

	// StatusReads counts Inb calls on CommandPort.
	StatusReads int

	// Busy keeps the input buffer full bit set forever.
	Busy bool

	// InError, if set, is returned by Inb.
	InError error

	// OutError, if set, is returned by Outb (the write is still recorded).
	OutError error
}

// Inb returns the status register or 0 for any other port.
func (f *FakePorts) Inb(port uint16) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InError != nil {
		return 0, f.InError
	}
	if port != CommandPort {
		return 0, nil
	}
	f.StatusReads++
	if f.Busy {
		return 1 << statusIBF, nil
	}
	return 0, nil
}

// Outb records the write.
func (f *FakePorts) Outb(port uint16, value byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, PortWrite{Port: port, Value: value})
	return f.OutError
}

// Snapshot returns a copy of the recorded writes.
func (f *FakePorts) Snapshot() []PortWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PortWrite, len(f.Writes))
	copy(out, f.Writes)
	return out
}

// RAMWrite records a single EC RAM write.
type RAMWrite struct {
	Addr  byte
	Value byte
}

// FakeRAM is a Writer that records writes and keeps the resulting RAM image.
type FakeRAM struct {
	mu     sync.Mutex
	RAM    [256]byte
	Writes []RAMWrite
}

// Write records the write.
func (f *FakeRAM) Write(addr, value byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RAM[addr] = value
	f.Writes = append(f.Writes, RAMWrite{Addr: addr, Value: value})
}

// Snapshot returns a copy of the recorded writes.
func (f *FakeRAM) Snapshot() []RAMWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RAMWrite, len(f.Writes))
	copy(out, f.Writes)
	return out
}

// Reset clears recorded writes and the RAM image.
func (f *FakeRAM) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RAM = [256]byte{}
	f.Writes = nil
}

// FakeMapper returns a Mapper backed by mem. If err is non-nil the mapping
// fails with it.
func FakeMapper(mem []byte, err error) Mapper {
	return func() ([]byte, func() error, error) {
		if err != nil {
			return nil, nil, err
		}
		return mem, func() error { return nil }, nil
	}
}

// ErrFakeMap is a convenience error for failing mappings in tests.
var ErrFakeMap = errors.New("fake: mmap not permitted")
