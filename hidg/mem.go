package hidg

import "sync"

// Mem is an in-memory Device capturing every report written to it. Used by
// engine tests in place of a real gadget node.
type Mem struct {
	mu       sync.Mutex
	reports  [][]byte
	closed   bool
	failWith error
}

// NewMem returns an empty in-memory device.
func NewMem() *Mem { return &Mem{} }

func (m *Mem) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	b := make([]byte, len(p))
	copy(b, p)
	m.reports = append(m.reports, b)
	return len(p), nil
}

func (m *Mem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Reports returns a copy of all reports written so far, oldest first.
func (m *Mem) Reports() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.reports))
	for i, r := range m.reports {
		b := make([]byte, len(r))
		copy(b, r)
		out[i] = b
	}
	return out
}

// Last returns the most recent report, or nil if none were written.
func (m *Mem) Last() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.reports) == 0 {
		return nil
	}
	b := make([]byte, len(m.reports[len(m.reports)-1]))
	copy(b, m.reports[len(m.reports)-1])
	return b
}

// Closed reports whether Close has been called.
func (m *Mem) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// FailWrites makes every subsequent Write return err (nil restores writes).
func (m *Mem) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}
