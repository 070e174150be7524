package api

import (
	"sync"

	"github.com/zane-programs/helldivers-stratagem-pad/keyboard"
)

const subscriberBacklog = 16

// Broadcaster fans engine events out to any number of watch subscribers.
// A slow subscriber loses events instead of stalling the drain loop, so the
// engine never blocks on a stuck network peer.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan keyboard.Event]struct{}
	closed bool
}

// NewBroadcaster returns a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan keyboard.Event]struct{})}
}

// Run drains src and forwards each event to every subscriber. It returns when
// src is closed and is meant to run on its own goroutine.
func (b *Broadcaster) Run(src <-chan keyboard.Event) {
	for ev := range src {
		b.mu.Lock()
		for ch := range b.subs {
			select {
			case ch <- ev:
			default:
			}
		}
		b.mu.Unlock()
	}
	b.Close()
}

// Subscribe registers a new subscriber and returns its channel along with a
// cancel func releasing it. The channel is closed on cancel or broadcaster
// shutdown. Subscribing to a closed broadcaster yields an already-closed
// channel.
func (b *Broadcaster) Subscribe() (<-chan keyboard.Event, func()) {
	ch := make(chan keyboard.Event, subscriberBacklog)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// Close detaches and closes every subscriber channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
