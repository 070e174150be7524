//go:build !linux

package hidg

import (
	"fmt"
	"os"
)

// Open on non-Linux platforms only checks existence before opening; gadget
// nodes exist on Linux, this path keeps cross-platform builds and tests
// working.
func Open(path string) (Device, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
