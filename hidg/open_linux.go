//go:build linux

package hidg

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open verifies the device node is present and accessible, then opens a
// single read-write handle. A missing node usually means the gadget is not
// bound to a UDC; a permission error means the process lacks rights on the
// node.
func Open(path string) (Device, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return nil, fmt.Errorf("access %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
