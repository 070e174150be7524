package handler_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api/handler"
	handlerTest "github.com/zane-programs/helldivers-stratagem-pad/internal/testing"
	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

func TestEventsWatchRelaysEvents(t *testing.T) {
	src := make(chan keyboard.Event, 4)
	b := api.NewBroadcaster()
	go b.Run(src)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	handlerDone := make(chan error, 1)
	h := handler.EventsWatch(b)
	go func() { handlerDone <- h(serverConn, slog.Default()) }()

	// Events published before the subscription registers are not replayed.
	time.Sleep(50 * time.Millisecond)
	src <- keyboard.Event{Kind: keyboard.EventConnected, Device: "/dev/hidg0"}

	var ev keyboard.Event
	dec := json.NewDecoder(clientConn)
	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, dec.Decode(&ev))
	assert.Equal(t, keyboard.EventConnected, ev.Kind)
	assert.Equal(t, "/dev/hidg0", ev.Device)

	// Closing the source ends the subscription and the handler.
	close(src)
	select {
	case err := <-handlerDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after source close")
	}
}

func TestEventsWatchClientHangup(t *testing.T) {
	b := api.NewBroadcaster()
	defer b.Close()

	clientConn, serverConn := net.Pipe()

	handlerDone := make(chan error, 1)
	h := handler.EventsWatch(b)
	go func() { handlerDone <- h(serverConn, slog.Default()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, clientConn.Close())

	select {
	case err := <-handlerDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client hangup")
	}
}

func TestEventsWatchE2E(t *testing.T) {
	addr, _, _, done := handlerTest.StartAPIServer(t, func(r *api.Router, kb *keyboard.Keyboard, apiSrv *api.Server) {
		r.Register("connect", handler.Connect(kb))
		r.RegisterStream("events/watch", handler.EventsWatch(apiSrv.Events()))
	})
	defer done()

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()

	_, err = fmt.Fprintf(c, "events/watch\x00")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	handlerTest.ExecCmd(t, addr, "connect")

	var ev keyboard.Event
	dec := json.NewDecoder(c)
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, dec.Decode(&ev))
	assert.Equal(t, keyboard.EventConnected, ev.Kind)
	assert.Equal(t, "/dev/hidg-test", ev.Device)
}
