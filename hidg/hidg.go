// Package hidg opens the USB gadget HID character device (/dev/hidgN) that
// the report engine writes keyboard reports to. The node is created by the
// kernel once the configfs gadget is bound to a UDC; see internal/gadget.
package hidg

// Device is an open handle to a HID report sink. Writes must carry one whole
// report; partial writes are not meaningful at this boundary.
type Device interface {
	Write(p []byte) (int, error)
	Close() error
}
