package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// ReportLogger handles raw HID report logging with optional file output.
type ReportLogger interface {
	Log(report []byte)
}

// reportLogger implements ReportLogger with thread-safe log.
type reportLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewReport creates a new ReportLogger. If writer is nil, returns a no-op
// logger.
func NewReport(w io.Writer) ReportLogger {
	return &reportLogger{w: w}
}

// Log emits a single-line report log with timestamp and hex dump.
func (r *reportLogger) Log(report []byte) {
	if len(report) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range report {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s report: %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		len(report),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
