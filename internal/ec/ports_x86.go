//go:build linux && (amd64 || 386)

package ec

import "github.com/u-root/u-root/pkg/memio"

// DevPorts performs port I/O through /dev/port.
type DevPorts struct{}

// Inb reads one byte from port.
func (DevPorts) Inb(port uint16) (byte, error) {
	var v memio.Uint8
	if err := memio.In(port, &v); err != nil {
		return 0, err
	}
	return byte(v), nil
}

// Outb writes one byte to port.
func (DevPorts) Outb(port uint16, value byte) error {
	v := memio.Uint8(value)
	return memio.Out(port, &v)
}
