//go:build linux

package ec

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DevMemMapper maps size bytes of physical memory at base through /dev/mem.
// The base need not be page aligned.
func DevMemMapper(base int64, size int) Mapper {
	return func() ([]byte, func() error, error) {
		f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("open /dev/mem: %w", err)
		}
		defer f.Close()

		pageSize := int64(os.Getpagesize())
		pageBase := base &^ (pageSize - 1)
		off := int(base - pageBase)

		mem, err := unix.Mmap(int(f.Fd()), pageBase, off+size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return nil, nil, fmt.Errorf("mmap 0x%x+%d: %w", base, size, err)
		}
		return mem[off : off+size], func() error { return unix.Munmap(mem) }, nil
	}
}
