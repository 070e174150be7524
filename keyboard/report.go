package keyboard

import (
	"encoding/hex"
	"fmt"

	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

const (
	// ReportSize is the length of a boot-protocol keyboard input report.
	ReportSize = 8

	// MaxKeys is the number of concurrent key slots in one report.
	MaxKeys = 6
)

// Report is one boot-protocol keyboard input report: modifier bitmask,
// reserved byte, then six key slots packed from the left and zero-padded.
type Report [ReportSize]byte

// BuildReport encodes a modifier mask and up to six key codes. More than six
// codes cannot be represented and returns ErrInvalidReport.
func BuildReport(mask keymap.Modifier, keys []keymap.KeyCode) (Report, error) {
	var r Report
	if len(keys) > MaxKeys {
		return r, fmt.Errorf("%w: %d key codes, report holds %d", ErrInvalidReport, len(keys), MaxKeys)
	}
	r[0] = mask
	copy(r[2:], keys)
	return r, nil
}

// Hex renders the report as lowercase hex without separators.
func (r Report) Hex() string {
	return hex.EncodeToString(r[:])
}
