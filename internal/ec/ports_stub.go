//go:build !(linux && (amd64 || 386))

package ec

import "errors"

var errNoPorts = errors.New("ec: port I/O not supported on this platform (requires Linux on x86)")

// DevPorts is not available off Linux/x86.
type DevPorts struct{}

// Inb always fails.
func (DevPorts) Inb(port uint16) (byte, error) {
	return 0, errNoPorts
}

// Outb always fails.
func (DevPorts) Outb(port uint16, value byte) error {
	return errNoPorts
}
