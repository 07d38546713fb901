package ec

import "log"

// mmioAccess writes EC RAM through a mapped window. The controller reads the
// same memory, so no handshake is needed.
type mmioAccess struct {
	mem   []byte
	unmap func() error
}

func (m *mmioAccess) write(addr, value byte) {
	if int(addr) >= len(m.mem) {
		log.Printf("ec: mmio address 0x%02x outside %d-byte window", addr, len(m.mem))
		return
	}
	m.mem[addr] = value
}

func (m *mmioAccess) close() error {
	if m.unmap == nil {
		return nil
	}
	err := m.unmap()
	m.unmap = nil
	return err
}
