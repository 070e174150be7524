package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

// EventStream is a long-lived connection receiving engine events as they
// happen on the server.
type EventStream struct {
	conn   net.Conn
	events chan keyboard.Event

	mu     sync.Mutex
	err    error
	closed bool
}

// Watch opens the server's event stream. Decoded events arrive on Events()
// until the stream is closed by either side; the channel is then closed and
// Err reports any terminal decode failure.
func (c *Client) Watch(ctx context.Context) (*EventStream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("event streams not supported with mock transport")
	}

	d := &net.Dialer{Timeout: c.transport.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.transport.addr)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	if c.transport.cfg.Password != "" {
		conn, err = authenticate(conn, c.transport.cfg.Password)
		if err != nil {
			return nil, err
		}
	}

	if _, err := conn.Write([]byte("events/watch\x00")); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}

	es := &EventStream{
		conn:   conn,
		events: make(chan keyboard.Event, 16),
	}
	go es.read()
	return es, nil
}

// Events returns the channel decoded events arrive on.
func (es *EventStream) Events() <-chan keyboard.Event { return es.events }

// Err returns the terminal error once the event channel is closed. A clean
// hang-up on either side reports nil.
func (es *EventStream) Err() error {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.err
}

// Close terminates the stream. Pending events already decoded still drain
// from Events().
func (es *EventStream) Close() error {
	es.mu.Lock()
	if es.closed {
		es.mu.Unlock()
		return nil
	}
	es.closed = true
	es.mu.Unlock()
	return es.conn.Close()
}

func (es *EventStream) read() {
	defer close(es.events)
	dec := json.NewDecoder(es.conn)
	for {
		var ev keyboard.Event
		if err := dec.Decode(&ev); err != nil {
			es.mu.Lock()
			if !es.closed && err != io.EOF {
				es.err = err
			}
			es.mu.Unlock()
			return
		}
		es.events <- ev
	}
}
