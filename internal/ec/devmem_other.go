//go:build !linux

package ec

import "errors"

// DevMemMapper is not available on non-Linux platforms.
func DevMemMapper(base int64, size int) Mapper {
	return func() ([]byte, func() error, error) {
		return nil, nil, errors.New("ec: /dev/mem mapping not supported on this platform (requires Linux)")
	}
}
