package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"

	"github.com/zane-programs/helldivers-stratagem-pad/internal/server/api"
)

// EventsWatch returns a stream handler relaying engine events to the client
// as JSON lines until the client hangs up or the server shuts down.
func EventsWatch(events *api.Broadcaster) api.StreamHandlerFunc {
	return func(conn net.Conn, logger *slog.Logger) error {
		defer conn.Close()

		sub, cancel := events.Subscribe()
		defer cancel()

		// A peer hang-up is only visible on the read side; watch for it so
		// an idle stream does not hold its subscription forever.
		closed := make(chan struct{})
		go func() {
			_, _ = io.Copy(io.Discard, conn)
			close(closed)
		}()

		enc := json.NewEncoder(conn)
		for {
			select {
			case ev, ok := <-sub:
				if !ok {
					return nil
				}
				if err := enc.Encode(ev); err != nil {
					return err
				}
			case <-closed:
				return nil
			}
		}
	}
}
