package testing

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/zane-programs/helldivers-stratagem-pad/hidg"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
	"github.com/zane-programs/helldivers-stratagem-pad/keymap"
)

type instantClock struct{}

func (instantClock) Sleep(time.Duration) {}

// NewTestKeyboard builds an engine writing into an in-memory device, with
// hold and settle delays elided so tests run at full speed. The engine
// starts disconnected.
func NewTestKeyboard(t *testing.T) (*keyboard.Keyboard, *hidg.Mem) {
	t.Helper()
	mem := hidg.NewMem()
	cfg := keyboard.Config{
		DevicePath:  "/dev/hidg-test",
		AutoRelease: true,
		Clock:       instantClock{},
		OpenDevice: func(path string) (hidg.Device, error) {
			return mem, nil
		},
	}
	return keyboard.New(cfg, keymap.New(), slog.Default(), nil), mem
}

// StartAPIServer starts an API server on a free port, backed by an in-memory
// device, and calls register to allow the caller to register the handlers
// needed for the test. Returns the address, the engine, its memory device
// and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server)) (addr string, kb *keyboard.Keyboard, mem *hidg.Mem, done func()) {
	t.Helper()
	kb, mem = NewTestKeyboard(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	addr = ln.Addr().String()
	_ = ln.Close()

	apiSrv := api.New(kb, addr, api.ServerConfig{}, slog.Default())
	if register != nil {
		register(apiSrv.Router(), kb, apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}

	done = func() {
		apiSrv.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return addr, kb, mem, done
}

// ExecCmd dials the API server, sends cmd and reads the full response.
// The command should not include a trailing newline. Returns the response
// without the trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	// Null terminator matches the API server framing
	_, _ = fmt.Fprintf(c, "%s\x00", cmd)

	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}

	result := strings.TrimSuffix(line, "\n")
	result = strings.TrimSuffix(result, "\r")
	return result
}
